package renamers

import (
	"testing"

	"github.com/modforge/modforge/internal/rename"
	"github.com/modforge/modforge/internal/testutil"
)

const (
	commonSrc = "shared/common/src/main/java/"
	fabricSrc = "shared/fabric/src/main/java/"
	forgeSrc  = "shared/forge/src/main/java/"
	scope     = "versions/1.20.1/"
)

// itemProject is a two-loader project with one item, ruby_sword, and an
// unrelated item, ruby_gem, that must never be touched.
func itemProject(t *testing.T) *testutil.TestProject {
	t.Helper()
	return testutil.NewTestProject(t).
		WithConfig("testmod", "com.testmod").
		WithFile(commonSrc+"com/testmod/items/RubySword.java",
			testutil.ComponentClass("com.testmod", "items", "RubySword", "ruby_sword", "SwordItem")).
		WithFile(commonSrc+"com/testmod/items/RubyGem.java",
			testutil.ComponentClass("com.testmod", "items", "RubyGem", "ruby_gem", "Item")).
		WithFile(commonSrc+"com/testmod/registry/ModItems.java",
			testutil.RegistryClass("com.testmod", "ModItems", "items", map[string]string{"RubySword": "ruby_sword"})).
		WithFile(fabricSrc+"com/testmod/platform/fabric/RubySwordFabric.java",
			testutil.PlatformClass("com.testmod", "fabric", "RubySword", "Fabric", "items")).
		WithFile(forgeSrc+"com/testmod/platform/forge/RubySwordForge.java",
			testutil.PlatformClass("com.testmod", "forge", "RubySword", "Forge", "items")).
		WithFile(scope+"assets/testmod/models/item/ruby_sword.json", testutil.ItemModel("testmod", "ruby_sword")).
		WithFile(scope+"assets/testmod/models/item/ruby_gem.json", testutil.ItemModel("testmod", "ruby_gem")).
		WithFile(scope+"assets/testmod/textures/item/ruby_sword.png", "\x89PNG fake").
		WithFile(scope+"data/testmod/recipes/ruby_sword.json", testutil.ShapedRecipe("testmod", "ruby_sword")).
		WithFile(scope+"assets/testmod/lang/en_us.json", testutil.Lang(
			"item.testmod.ruby_sword", "Ruby Sword",
			"item.testmod.ruby_gem", "Ruby Gem",
		)).
		WithFile(scope+"data/testmod/tags/items/swords.json", testutil.Tag("testmod:ruby_sword")).
		Build()
}

func componentContext(p *testutil.TestProject, kind rename.Kind, oldName, newName string) *rename.Context {
	return &rename.Context{
		ProjectRoot: p.Path,
		ModID:       "testmod",
		PackageName: "com.testmod",
		Kind:        kind,
		OldName:     oldName,
		NewName:     newName,
	}
}

// runRename plans and executes a rename, failing the test on any error.
func runRename(t *testing.T, ctx *rename.Context) *Outcome {
	t.Helper()
	r, err := For(ctx.Kind)
	if err != nil {
		t.Fatalf("For(%s): %v", ctx.Kind, err)
	}
	out, err := Run(ctx, r, rename.NewExecutor(ctx.ProjectRoot), RunOptions{})
	if err != nil {
		t.Fatalf("rename %s %s -> %s failed: %v", ctx.Kind, ctx.OldName, ctx.NewName, err)
	}
	return out
}

func hasReason(refs map[string][]string, file, reason string) bool {
	for _, r := range refs[file] {
		if r == reason {
			return true
		}
	}
	return false
}
