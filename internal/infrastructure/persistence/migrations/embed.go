// Package migrations carries the SQL schema history. Files are embedded so
// the binary can migrate without a checkout on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
