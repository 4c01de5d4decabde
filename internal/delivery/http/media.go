package http

import (
	"net/http"
	"os"
	"path"
	"strings"
)

// Media serves the uploaded files under dir. Directories are never listed:
// any path that does not name a regular file is a 404.
func Media(dir string) http.Handler {
	root := os.DirFS(dir)
	files := http.FileServerFS(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" || !isFile(root, name) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
