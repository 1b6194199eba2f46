// Package configs embeds the JSON schemas shipped with the service.
package configs

import "embed"

// Schemas holds every file under schemas/, addressed as "schemas/<name>".
//
//go:embed schemas/*.json
var Schemas embed.FS
