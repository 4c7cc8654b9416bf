package testutil

import (
	"fmt"
	"strings"
)

// ComponentClass returns a generated component class the way the scaffolder writes it.
func ComponentClass(pkg, category, className, id, base string) string {
	return fmt.Sprintf(`package %s.%s;

public class %s extends %s {
    public static final String ID = "%s";

    public %s(Properties properties) {
        super(properties);
    }
}
`, pkg, category, className, base, id, className)
}

// PlatformClass returns a loader-specific registration class for a component.
func PlatformClass(pkg, loader, className, suffix, category string) string {
	return fmt.Sprintf(`package %s.platform.%s;

import %s.%s.%s;

public final class %s%s {
    public static void register() {
        Registry.register(%s.ID, %s::new);
    }
}
`, pkg, loader, pkg, category, className, className, suffix, className, className)
}

// RegistryClass returns a registry holder that references each class by import
// and UPPER_SNAKE constant.
func RegistryClass(pkg, holder, category string, classes map[string]string) string {
	var imports, fields strings.Builder
	for className, id := range classes {
		fmt.Fprintf(&imports, "import %s.%s.%s;\n", pkg, category, className)
		fmt.Fprintf(&fields, "    public static final Object %s = register(%s.ID);\n",
			strings.ToUpper(id), className)
	}
	return fmt.Sprintf("package %s.registry;\n\n%s\npublic final class %s {\n%s}\n",
		pkg, imports.String(), holder, fields.String())
}

// ItemModel returns an item model JSON pointing at the item texture.
func ItemModel(modID, id string) string {
	return fmt.Sprintf(`{
  "parent": "minecraft:item/handheld",
  "textures": {
    "layer0": "%s:item/%s"
  }
}
`, modID, id)
}

// BlockModel returns a cube_all block model JSON.
func BlockModel(modID, id string) string {
	return fmt.Sprintf(`{
  "parent": "minecraft:block/cube_all",
  "textures": {
    "all": "%s:block/%s"
  }
}
`, modID, id)
}

// BlockItemModel returns the item model that inherits from a block model.
func BlockItemModel(modID, id string) string {
	return fmt.Sprintf("{\n  \"parent\": \"%s:block/%s\"\n}\n", modID, id)
}

// Blockstate returns a single-variant blockstate JSON.
func Blockstate(modID, id string) string {
	return fmt.Sprintf(`{
  "variants": {
    "": { "model": "%s:block/%s" }
  }
}
`, modID, id)
}

// LootTable returns a self-dropping block loot table.
func LootTable(modID, id string) string {
	return fmt.Sprintf(`{
  "type": "minecraft:block",
  "pools": [
    {
      "rolls": 1,
      "entries": [ { "type": "minecraft:item", "name": "%s:%s" } ]
    }
  ]
}
`, modID, id)
}

// ShapedRecipe returns a recipe whose result is modID:id.
func ShapedRecipe(modID, id string) string {
	return fmt.Sprintf(`{
  "type": "minecraft:crafting_shaped",
  "pattern": [" R ", " R ", " S "],
  "key": {
    "R": { "item": "minecraft:redstone" },
    "S": { "item": "minecraft:stick" }
  },
  "result": { "item": "%s:%s" }
}
`, modID, id)
}

// Tag returns a tag file listing the given resource locations.
func Tag(values ...string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("    %q", v)
	}
	return fmt.Sprintf("{\n  \"replace\": false,\n  \"values\": [\n%s\n  ]\n}\n", strings.Join(quoted, ",\n"))
}

// Lang returns a lang JSON file. Pairs are key, value, key, value...
func Lang(pairs ...string) string {
	var lines []string
	for i := 0; i+1 < len(pairs); i += 2 {
		lines = append(lines, fmt.Sprintf("  %q: %q", pairs[i], pairs[i+1]))
	}
	return "{\n" + strings.Join(lines, ",\n") + "\n}\n"
}
