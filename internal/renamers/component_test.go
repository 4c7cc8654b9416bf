package renamers

import (
	"strings"
	"testing"

	"github.com/modforge/modforge/internal/rename"
	"github.com/modforge/modforge/internal/testutil"
)

func TestBlockRename(t *testing.T) {
	p := testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/blocks/RubyOre.java",
			testutil.ComponentClass("com.testmod", "blocks", "RubyOre", "ruby_ore", "Block")).
		WithFile(fabricSrc+"com/testmod/platform/fabric/RubyOreFabric.java",
			testutil.PlatformClass("com.testmod", "fabric", "RubyOre", "Fabric", "blocks")).
		WithFile(scope+"assets/testmod/blockstates/ruby_ore.json", testutil.Blockstate("testmod", "ruby_ore")).
		WithFile(scope+"assets/testmod/models/block/ruby_ore.json", testutil.BlockModel("testmod", "ruby_ore")).
		WithFile(scope+"assets/testmod/models/item/ruby_ore.json", testutil.BlockItemModel("testmod", "ruby_ore")).
		WithFile(scope+"assets/testmod/textures/block/ruby_ore.png", "\x89PNG fake").
		WithFile(scope+"data/testmod/loot_tables/blocks/ruby_ore.json", testutil.LootTable("testmod", "ruby_ore")).
		WithFile(scope+"data/minecraft/tags/blocks/mineable/pickaxe.json", testutil.Tag("testmod:ruby_ore")).
		WithFile(scope+"assets/testmod/lang/en_us.json", testutil.Lang("block.testmod.ruby_ore", "Ruby Ore")).
		Build()

	runRename(t, componentContext(p, rename.KindBlock, "ruby_ore", "sapphire_ore"))

	p.AssertFileContains(commonSrc+"com/testmod/blocks/SapphireOre.java", `ID = "sapphire_ore"`)
	p.AssertFileContains(fabricSrc+"com/testmod/platform/fabric/SapphireOreFabric.java", "import com.testmod.blocks.SapphireOre;")
	p.AssertFileContains(scope+"assets/testmod/blockstates/sapphire_ore.json", `"testmod:block/sapphire_ore"`)
	p.AssertFileContains(scope+"assets/testmod/models/block/sapphire_ore.json", `"testmod:block/sapphire_ore"`)
	p.AssertFileContains(scope+"assets/testmod/models/item/sapphire_ore.json", `"testmod:block/sapphire_ore"`)
	p.AssertFileExists(scope + "assets/testmod/textures/block/sapphire_ore.png")
	p.AssertFileContains(scope+"data/testmod/loot_tables/blocks/sapphire_ore.json", `"testmod:sapphire_ore"`)
	p.AssertFileContains(scope+"data/minecraft/tags/blocks/mineable/pickaxe.json", `"testmod:sapphire_ore"`)
	p.AssertFileContains(scope+"assets/testmod/lang/en_us.json", `"block.testmod.sapphire_ore": "Sapphire Ore"`)

	for _, old := range []string{
		scope + "assets/testmod/blockstates/ruby_ore.json",
		scope + "assets/testmod/models/block/ruby_ore.json",
		scope + "data/testmod/loot_tables/blocks/ruby_ore.json",
	} {
		p.AssertFileNotExists(old)
	}
}

func TestEntityRenameWithSpawnEgg(t *testing.T) {
	p := testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/entities/FireGolem.java",
			testutil.ComponentClass("com.testmod", "entities", "FireGolem", "fire_golem", "PathfinderMob")).
		WithFile(commonSrc+"com/testmod/items/FireGolemSpawnEgg.java",
			"package com.testmod.items;\n\nimport com.testmod.entities.FireGolem;\n\npublic class FireGolemSpawnEgg {\n    public static final String ID = \"fire_golem_spawn_egg\";\n}\n").
		WithFile(fabricSrc+"com/testmod/platform/fabric/FireGolemFabric.java",
			testutil.PlatformClass("com.testmod", "fabric", "FireGolem", "Fabric", "entities")).
		WithFile(fabricSrc+"com/testmod/platform/fabric/FireGolemRendererFabric.java",
			"package com.testmod.platform.fabric;\n\npublic class FireGolemRendererFabric {}\n").
		WithFile(scope+"assets/testmod/models/entity/fire_golem.json", "{}\n").
		WithFile(scope+"assets/testmod/textures/entity/fire_golem.png", "\x89PNG fake").
		WithFile(scope+"assets/testmod/models/item/fire_golem_spawn_egg.json", testutil.ItemModel("testmod", "fire_golem_spawn_egg")).
		WithFile(scope+"assets/testmod/lang/en_us.json", testutil.Lang(
			"entity.testmod.fire_golem", "Fire Golem",
			"item.testmod.fire_golem_spawn_egg", "Fire Golem Spawn Egg",
		)).
		Build()

	runRename(t, componentContext(p, rename.KindEntity, "fire_golem", "ember_golem"))

	p.AssertFileContains(commonSrc+"com/testmod/entities/EmberGolem.java", "public class EmberGolem")
	p.AssertFileContains(commonSrc+"com/testmod/items/EmberGolemSpawnEgg.java", `ID = "ember_golem_spawn_egg"`)
	p.AssertFileContains(commonSrc+"com/testmod/items/EmberGolemSpawnEgg.java", "import com.testmod.entities.EmberGolem;")
	p.AssertFileExists(fabricSrc + "com/testmod/platform/fabric/EmberGolemFabric.java")
	p.AssertFileContains(fabricSrc+"com/testmod/platform/fabric/EmberGolemRendererFabric.java", "class EmberGolemRendererFabric")
	p.AssertFileExists(scope + "assets/testmod/models/entity/ember_golem.json")
	p.AssertFileExists(scope + "assets/testmod/textures/entity/ember_golem.png")
	p.AssertFileContains(scope+"assets/testmod/models/item/ember_golem_spawn_egg.json", `"testmod:item/ember_golem_spawn_egg"`)

	lang := p.ReadFile(scope + "assets/testmod/lang/en_us.json")
	for _, want := range []string{
		`"entity.testmod.ember_golem": "Ember Golem"`,
		`"item.testmod.ember_golem_spawn_egg": "Ember Golem Spawn Egg"`,
	} {
		if !strings.Contains(lang, want) {
			t.Errorf("lang missing %s:\n%s", want, lang)
		}
	}
}

func TestEnchantmentRename(t *testing.T) {
	p := testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/enchantments/FrostTouch.java",
			testutil.ComponentClass("com.testmod", "enchantments", "FrostTouch", "frost_touch", "Enchantment")).
		WithFile(scope+"data/testmod/enchantment/frost_touch.json",
			"{\n  \"description\": { \"translate\": \"enchantment.testmod.frost_touch\" },\n  \"max_level\": 2\n}\n").
		WithFile(scope+"assets/testmod/lang/en_us.json", testutil.Lang("enchantment.testmod.frost_touch", "Frost Touch")).
		Build()

	runRename(t, componentContext(p, rename.KindEnchantment, "frost_touch", "ice_touch"))

	p.AssertFileExists(commonSrc + "com/testmod/enchantments/IceTouch.java")
	p.AssertFileNotExists(scope + "data/testmod/enchantment/frost_touch.json")
	p.AssertFileContains(scope+"data/testmod/enchantment/ice_touch.json", `"enchantment.testmod.ice_touch"`)
	p.AssertFileContains(scope+"assets/testmod/lang/en_us.json", `"enchantment.testmod.ice_touch": "Ice Touch"`)
}

func TestBiomeRename(t *testing.T) {
	p := testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/biomes/CrystalCaves.java",
			testutil.ComponentClass("com.testmod", "biomes", "CrystalCaves", "crystal_caves", "BiomeSource")).
		WithFile(scope+"data/testmod/worldgen/biome/crystal_caves.json", "{\n  \"temperature\": 0.5\n}\n").
		WithFile(scope+"data/testmod/tags/worldgen/biome/is_overworld.json", testutil.Tag("testmod:crystal_caves")).
		Build()

	runRename(t, componentContext(p, rename.KindBiome, "crystal_caves", "gem_caves"))

	p.AssertFileExists(commonSrc + "com/testmod/biomes/GemCaves.java")
	p.AssertFileExists(scope + "data/testmod/worldgen/biome/gem_caves.json")
	p.AssertFileNotExists(scope + "data/testmod/worldgen/biome/crystal_caves.json")
	p.AssertFileContains(scope+"data/testmod/tags/worldgen/biome/is_overworld.json", `"testmod:gem_caves"`)
}

func TestVersionScopeLimitsAssets(t *testing.T) {
	p := testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/items/RubySword.java",
			testutil.ComponentClass("com.testmod", "items", "RubySword", "ruby_sword", "Item")).
		WithFile("versions/1.20.1/assets/testmod/models/item/ruby_sword.json", testutil.ItemModel("testmod", "ruby_sword")).
		WithFile("versions/1.21/assets/testmod/models/item/ruby_sword.json", testutil.ItemModel("testmod", "ruby_sword")).
		Build()

	ctx := componentContext(p, rename.KindItem, "ruby_sword", "ruby_blade")
	ctx.VersionScope = "1.21"
	found, err := NewItemRenamer().Discover(ctx)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if contains(found, p.Abs("versions/1.20.1/assets/testmod/models/item/ruby_sword.json")) {
		t.Fatal("asset outside the version scope was discovered")
	}
	if !contains(found, p.Abs("versions/1.21/assets/testmod/models/item/ruby_sword.json")) {
		t.Fatal("asset inside the version scope was not discovered")
	}
}

func TestVersionScopedRenameLeavesOtherScopes(t *testing.T) {
	p := testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/items/RubySword.java",
			testutil.ComponentClass("com.testmod", "items", "RubySword", "ruby_sword", "Item")).
		WithFile("versions/1.20.1/assets/testmod/models/item/ruby_sword.json", testutil.ItemModel("testmod", "ruby_sword")).
		WithFile("versions/1.20.1/assets/testmod/lang/en_us.json", testutil.Lang("item.testmod.ruby_sword", "Ruby Sword")).
		WithFile("versions/1.21/assets/testmod/models/item/ruby_sword.json", testutil.ItemModel("testmod", "ruby_sword")).
		WithFile("versions/1.21/assets/testmod/lang/en_us.json", testutil.Lang("item.testmod.ruby_sword", "Ruby Sword")).
		Build()
	oldModel := p.ReadFile("versions/1.20.1/assets/testmod/models/item/ruby_sword.json")
	oldLang := p.ReadFile("versions/1.20.1/assets/testmod/lang/en_us.json")

	ctx := componentContext(p, rename.KindItem, "ruby_sword", "ruby_blade")
	ctx.VersionScope = "1.21"
	out := runRename(t, ctx)
	if out.Validated == nil || !*out.Validated {
		t.Fatal("expected the scoped rename to validate")
	}

	p.AssertFileExists(commonSrc + "com/testmod/items/RubyBlade.java")
	p.AssertFileExists("versions/1.21/assets/testmod/models/item/ruby_blade.json")
	p.AssertFileContains("versions/1.21/assets/testmod/models/item/ruby_blade.json", "testmod:item/ruby_blade")
	p.AssertFileContains("versions/1.21/assets/testmod/lang/en_us.json", `"item.testmod.ruby_blade"`)

	p.AssertFileEquals("versions/1.20.1/assets/testmod/models/item/ruby_sword.json", oldModel)
	p.AssertFileEquals("versions/1.20.1/assets/testmod/lang/en_us.json", oldLang)
	p.AssertFileNotExists("versions/1.20.1/assets/testmod/models/item/ruby_blade.json")
}
