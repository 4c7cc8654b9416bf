package renamers

import "github.com/modforge/modforge/internal/rename"

// EntityRenamer renames an entity, its renderers and, when present, its spawn egg.
type EntityRenamer struct {
	componentRenamer
}

// NewEntityRenamer creates an EntityRenamer.
func NewEntityRenamer() *EntityRenamer {
	return &EntityRenamer{componentRenamer{spec: componentSpec{
		kind:          rename.KindEntity,
		category:      "entities",
		platformNames: []string{"%s%s", "%sRenderer%s"},
		extraClasses:  [][2]string{{"items", "%sSpawnEgg"}},
		assets: []assetRule{
			{side: "assets", dir: "models/entity", ext: ".json", description: "entity model"},
			{side: "assets", dir: "textures/entity", ext: ".png", description: "entity texture"},
			{side: "assets", dir: "models/item", ext: ".json", suffix: "_spawn_egg", description: "spawn egg model"},
			{side: "assets", dir: "textures/item", ext: ".png", suffix: "_spawn_egg", description: "spawn egg texture"},
		},
		ids: []idVariant{
			{langPrefixes: []string{"entity"}},
			{suffix: "_spawn_egg", langPrefixes: []string{"item"}},
		},
	}}}
}
