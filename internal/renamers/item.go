package renamers

import "github.com/modforge/modforge/internal/rename"

// ItemRenamer renames an item: its class, platform classes, model, texture and recipes.
type ItemRenamer struct {
	componentRenamer
}

// NewItemRenamer creates an ItemRenamer.
func NewItemRenamer() *ItemRenamer {
	return &ItemRenamer{componentRenamer{spec: componentSpec{
		kind:          rename.KindItem,
		category:      "items",
		platformNames: []string{"%s%s"},
		assets: []assetRule{
			{side: "assets", dir: "models/item", ext: ".json", description: "item model"},
			{side: "assets", dir: "textures/item", ext: ".png", description: "item texture"},
			{side: "data", dir: "recipes", ext: ".json", description: "recipe"},
			{side: "data", dir: "recipe", ext: ".json", description: "recipe (1.21+)"},
		},
		ids: []idVariant{{langPrefixes: []string{"item"}}},
	}}}
}
