// Package frontend embeds the chat UI served by the HTTP server.
package frontend

import "embed"

//go:embed dist
var StaticFiles embed.FS
