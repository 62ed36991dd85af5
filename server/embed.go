package server

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed web
var webFiles embed.FS

// HandleStatic serves the embedded form UI
func (s *Server) HandleStatic(w http.ResponseWriter, r *http.Request) {
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "embedded UI unavailable")
		return
	}
	http.FileServer(http.FS(sub)).ServeHTTP(w, r)
}
