// Package web embeds the default admin front end.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed static
var static embed.FS

// Assets returns the front-end files: the directory dir when it is set, the
// embedded copy otherwise.
func Assets(dir string) (fs.FS, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(static, "static")
}
