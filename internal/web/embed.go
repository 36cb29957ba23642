// Package web carries the embedded dashboard page.
package web

import "embed"

//go:embed static/dashboard.html
var staticFS embed.FS

// Dashboard returns the dashboard page bytes.
func Dashboard() []byte {
	b, err := staticFS.ReadFile("static/dashboard.html")
	if err != nil {
		// embed guarantees the file exists at build time
		panic(err)
	}
	return b
}
