package server

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// spaFileServer serves the built frontend. Paths that do not name a file
// get index.html so client side routes such as /watch/3 resolve.
type spaFileServer struct {
	files http.Handler
	fsys  fs.FS
}

func newSPAFileServer(fsys fs.FS) *spaFileServer {
	return &spaFileServer{
		files: http.FileServer(http.FS(fsys)),
		fsys:  fsys,
	}
}

func (s *spaFileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" || name == "." {
		name = "index.html"
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil || info.IsDir() {
		name = "index.html"
		r.URL.Path = "/"
	}

	if name == "index.html" {
		w.Header().Set("Cache-Control", "no-cache")
	} else if strings.HasPrefix(name, "assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}

	s.files.ServeHTTP(w, r)
}
