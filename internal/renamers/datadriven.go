package renamers

import "github.com/modforge/modforge/internal/rename"

// EnchantmentRenamer renames an enchantment class and its data definition.
type EnchantmentRenamer struct {
	componentRenamer
}

// NewEnchantmentRenamer creates an EnchantmentRenamer.
func NewEnchantmentRenamer() *EnchantmentRenamer {
	return &EnchantmentRenamer{componentRenamer{spec: componentSpec{
		kind:          rename.KindEnchantment,
		category:      "enchantments",
		platformNames: []string{"%s%s"},
		assets: []assetRule{
			{side: "data", dir: "enchantment", ext: ".json", description: "enchantment definition"},
		},
		ids: []idVariant{{langPrefixes: []string{"enchantment"}}},
	}}}
}

// BiomeRenamer renames a biome class and its worldgen definition.
type BiomeRenamer struct {
	componentRenamer
}

// NewBiomeRenamer creates a BiomeRenamer.
func NewBiomeRenamer() *BiomeRenamer {
	return &BiomeRenamer{componentRenamer{spec: componentSpec{
		kind:          rename.KindBiome,
		category:      "biomes",
		platformNames: []string{"%s%s"},
		assets: []assetRule{
			{side: "data", dir: "worldgen/biome", ext: ".json", description: "biome definition"},
		},
		ids: []idVariant{{langPrefixes: []string{"biome"}}},
	}}}
}
