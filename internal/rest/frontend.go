package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the single-page frontend. Requests for paths that do
// not match a file on disk fall back to the index document so client-side
// routing keeps working on a full page reload.
type FrontendHandler struct {
	dir   string
	index string
	fs    http.Handler
}

func NewFrontendHandler(dir, index string) *FrontendHandler {
	return &FrontendHandler{
		dir:   dir,
		index: index,
		fs:    http.FileServer(http.Dir(dir)),
	}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, h.index))
		return
	}

	h.fs.ServeHTTP(w, r)
}
