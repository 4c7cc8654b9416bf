// Package naming provides the case conversions shared by every renamer.
//
// A component has three spellings that must stay in sync:
//   - the registry ID, snake_case ("ruby_sword"), used in JSON, lang keys and file names
//   - the class name, PascalCase ("RubySword"), used for source files and identifiers
//   - the display name, Title Case ("Ruby Sword"), used as the lang value
//
// Registry IDs are normalized through gosimple/slug so user input like
// "Ruby Sword" or "RubySword" maps onto the same ID the generator produced.
package naming

import (
	"regexp"
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

var (
	idPattern      = regexp.MustCompile(`^[a-z0-9_]+$`)
	modIDPattern   = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
	packagePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

// NormalizeID converts free-form input into a registry ID.
//
//	"Ruby Sword" -> "ruby_sword"
//	"RubySword"  -> "ruby_sword"
//	"ruby-sword" -> "ruby_sword"
func NormalizeID(s string) string {
	s = splitCamel(strings.TrimSpace(s))
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(s, " ", "_"))
	}
	return strings.ReplaceAll(slugged, "-", "_")
}

// splitCamel inserts a space at each lower-to-upper boundary so slugging
// keeps word breaks from PascalCase input.
func splitCamel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func words(s string) []string {
	return strings.FieldsFunc(splitCamel(s), func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
}

// ToPascalCase converts an ID to a class name: "ruby_sword" -> "RubySword".
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// ToSnakeCase converts a class name to an ID: "RubySword" -> "ruby_sword".
func ToSnakeCase(s string) string {
	parts := words(s)
	for i, w := range parts {
		parts[i] = strings.ToLower(w)
	}
	return strings.Join(parts, "_")
}

// ToUpperSnake returns the constant spelling used by registry holders:
// "ruby_sword" -> "RUBY_SWORD".
func ToUpperSnake(s string) string {
	return strings.ToUpper(ToSnakeCase(s))
}

// ToDisplayName returns the default English lang value: "ruby_sword" -> "Ruby Sword".
func ToDisplayName(s string) string {
	parts := words(s)
	for i, w := range parts {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// SanitizePackageSegment strips the characters a mod ID may carry but a Java
// package segment may not: "my-cool_mod" -> "mycoolmod".
func SanitizePackageSegment(modID string) string {
	s := strings.ToLower(modID)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// PackageToPath maps a dotted package to a slash path: "com.testmod" -> "com/testmod".
func PackageToPath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}

// ReplacePackageSegment swaps every segment equal to oldSeg for newSeg.
// The boolean reports whether any segment matched.
func ReplacePackageSegment(pkg, oldSeg, newSeg string) (string, bool) {
	parts := strings.Split(pkg, ".")
	found := false
	for i, p := range parts {
		if p == oldSeg {
			parts[i] = newSeg
			found = true
		}
	}
	return strings.Join(parts, "."), found
}

// IsSubPackage reports whether child equals parent or lives below it.
func IsSubPackage(child, parent string) bool {
	return child == parent || strings.HasPrefix(child, parent+".")
}

var loaderSuffixes = map[string]string{
	"fabric":   "Fabric",
	"forge":    "Forge",
	"neoforge": "NeoForge",
	"quilt":    "Quilt",
}

// LoaderSuffix returns the class-name suffix the generator appends to
// loader-specific platform classes.
func LoaderSuffix(loader string) string {
	if s, ok := loaderSuffixes[strings.ToLower(loader)]; ok {
		return s
	}
	return ToPascalCase(loader)
}

// IsValidID reports whether s is a registry ID.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}

// IsValidModID reports whether s is usable as a mod ID.
func IsValidModID(s string) bool {
	return modIDPattern.MatchString(s)
}

// IsValidPackage reports whether s is a dotted Java/Kotlin package name.
func IsValidPackage(s string) bool {
	return packagePattern.MatchString(s)
}
