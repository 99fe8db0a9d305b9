// ABOUTME: Bundles the dashboard stylesheet and the chart-refresh script into the binary.
// ABOUTME: staticHandler serves them under /static/ with the directory prefix kept in the path.
package web

import (
	"embed"
	"net/http"
)

//go:embed static/css/*.css static/js/*.js
var assets embed.FS

// staticHandler serves the embedded assets. The router mounts it at
// /static/*, which matches the embedded "static/" prefix.
func staticHandler() http.Handler {
	return http.FileServerFS(assets)
}
