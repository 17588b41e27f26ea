// Package configs embeds the default game configuration so the binaries run
// without a config directory.
package configs

import "embed"

// FS holds physics, entities and stages/.
//
//go:embed *.json *.yaml stages
var FS embed.FS
