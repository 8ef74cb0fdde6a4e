// Package templates embeds the html templates so the binary and the tests do
// not depend on the working directory.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
