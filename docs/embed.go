package docs

import "embed"

// FS contains the Markdown guides bundled with the modforge binary.
//
//go:embed guide
var FS embed.FS
