package rename

import (
	"fmt"
	"strings"
)

// Kind identifies what is being renamed.
type Kind string

const (
	KindItem        Kind = "item"
	KindBlock       Kind = "block"
	KindEntity      Kind = "entity"
	KindEnchantment Kind = "enchantment"
	KindBiome       Kind = "biome"
	KindMod         Kind = "mod"
	KindPackage     Kind = "package"
)

// AllKinds lists every kind in CLI order.
var AllKinds = []Kind{
	KindItem,
	KindBlock,
	KindEntity,
	KindEnchantment,
	KindBiome,
	KindMod,
	KindPackage,
}

// ParseKind converts a CLI argument to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown component kind %q (expected one of %s)", s, kindList())
}

// IsComponent reports whether the kind is a registry component (item, block,
// entity, enchantment, biome) rather than a project-wide refactor.
func (k Kind) IsComponent() bool {
	switch k {
	case KindItem, KindBlock, KindEntity, KindEnchantment, KindBiome:
		return true
	default:
		return false
	}
}

func kindList() string {
	names := make([]string, len(AllKinds))
	for i, k := range AllKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
