// Package embed holds the templates shipped inside the binary.
package embed

import "embed"

// Root is the directory inside Templates that holds one directory per template.
const Root = "templates"

//go:embed all:templates
var Templates embed.FS
