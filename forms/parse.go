package forms

import (
	"errors"
	"mime"
	"net/http"
)

// multipartOverhead is room for the non-file fields of a multipart body.
const multipartOverhead = 1 << 20

// parse reads the request body and reports whether it was multipart.
// Multipart bodies are capped at maxUpload plus the field overhead, so an
// oversized upload fails here instead of being spooled to disk.
func parse(w http.ResponseWriter, r *http.Request, maxUpload int64) (bool, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return false, r.ParseForm()
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	return true, r.ParseMultipartForm(maxUpload + multipartOverhead)
}

// IsTooLarge reports whether err came from a body over the upload limit.
func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
