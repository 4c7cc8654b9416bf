package renamers

import "github.com/modforge/modforge/internal/rename"

// BlockRenamer renames a block along with its blockstate, models, texture,
// loot table and recipes. Tags are rewritten through the reference search.
type BlockRenamer struct {
	componentRenamer
}

// NewBlockRenamer creates a BlockRenamer.
func NewBlockRenamer() *BlockRenamer {
	return &BlockRenamer{componentRenamer{spec: componentSpec{
		kind:          rename.KindBlock,
		category:      "blocks",
		platformNames: []string{"%s%s"},
		assets: []assetRule{
			{side: "assets", dir: "blockstates", ext: ".json", description: "blockstate"},
			{side: "assets", dir: "models/block", ext: ".json", description: "block model"},
			{side: "assets", dir: "models/item", ext: ".json", description: "block item model"},
			{side: "assets", dir: "textures/block", ext: ".png", description: "block texture"},
			{side: "data", dir: "loot_tables/blocks", ext: ".json", description: "loot table"},
			{side: "data", dir: "loot_table/blocks", ext: ".json", description: "loot table (1.21+)"},
			{side: "data", dir: "recipes", ext: ".json", description: "recipe"},
			{side: "data", dir: "recipe", ext: ".json", description: "recipe (1.21+)"},
		},
		// Block items are translated under item.<mod>.<id> as well.
		ids: []idVariant{{langPrefixes: []string{"block", "item"}}},
	}}}
}
