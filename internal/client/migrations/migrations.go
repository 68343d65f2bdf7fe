// Package migrations embeds the schema of the console's local state file.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
