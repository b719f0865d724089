package routes

import (
	"net/http"
	"os"
)

// fileOnlyFS hides directories so the media prefix cannot be listed.
type fileOnlyFS struct {
	http.FileSystem
}

func (fsys fileOnlyFS) Open(name string) (http.File, error) {
	f, err := fsys.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

func mediaHandler(prefix, root string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(fileOnlyFS{http.Dir(root)}))
}
