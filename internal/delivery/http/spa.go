package http

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexFile = "index.html"

// SPA serves the front-end assets in root. Paths that do not name a file get
// index.html with status 404, so deep links still load the app.
func SPA(root fs.FS) http.Handler {
	files := http.FileServerFS(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		switch {
		case name == "" || name == indexFile:
			serveIndex(w, root, http.StatusOK)
		case isFile(root, name):
			files.ServeHTTP(w, r)
		default:
			serveIndex(w, root, http.StatusNotFound)
		}
	})
}

func isFile(root fs.FS, name string) bool {
	info, err := fs.Stat(root, name)
	return err == nil && !info.IsDir()
}

func serveIndex(w http.ResponseWriter, root fs.FS, status int) {
	b, err := fs.ReadFile(root, indexFile)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
