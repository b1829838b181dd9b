package webtemplates

import "embed"

// FS holds the email templates.
// Note: patterns are relative to this file's directory.
//
//go:embed email/*.tmpl
var FS embed.FS
