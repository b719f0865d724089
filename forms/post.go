package forms

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Upload is an image read from a multipart field.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

func (u *Upload) Reader() io.Reader {
	return bytes.NewReader(u.Data)
}

// PostForm edits the text, group and image of a post.
type PostForm struct {
	Text  string  `form:"text" validate:"required"`
	Group string  `form:"group" validate:"omitempty,numeric"`
	Image *Upload `form:"-"`

	Errors Errors `form:"-"`
}

// ParsePostForm reads a urlencoded or multipart request body. Files larger
// than maxUpload are rejected by Validate; bodies far beyond it fail with an
// error IsTooLarge recognises.
func ParsePostForm(w http.ResponseWriter, r *http.Request, maxUpload int64) (*PostForm, error) {
	isMultipart, err := parse(w, r, maxUpload)
	if err != nil {
		return nil, err
	}

	form := &PostForm{
		Text:   strings.TrimSpace(r.PostFormValue("text")),
		Group:  strings.TrimSpace(r.PostFormValue("group")),
		Errors: Errors{},
	}

	if !isMultipart {
		return form, nil
	}
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return form, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image field: %w", err)
	}
	defer file.Close()

	// one extra byte tells an oversized file apart from an exact fit
	data, err := io.ReadAll(io.LimitReader(file, maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("read image field: %w", err)
	}
	form.Image = &Upload{
		Filename:    header.Filename,
		ContentType: http.DetectContentType(data),
		Size:        header.Size,
		Data:        data,
	}
	return form, nil
}

// Validate checks the fields. groupExists reports whether a group id refers
// to an existing group.
func (f *PostForm) Validate(maxUpload int64, groupExists func(id uint) bool) bool {
	f.Errors = check(f)

	if f.Group != "" && !f.Errors.Has("group") {
		id, err := f.GroupID()
		if err != nil || id == nil || !groupExists(*id) {
			f.Errors.Add("group", "Select a valid choice. That choice is not one of the available choices.")
		}
	}

	if f.Image != nil {
		switch {
		case int64(len(f.Image.Data)) > maxUpload:
			f.Errors.Add("image", fmt.Sprintf("Ensure the file is at most %d bytes.", maxUpload))
		case !isImage(f.Image.Data):
			f.Errors.Add("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		}
	}

	return !f.Errors.Any()
}

// GroupID is nil when no group was chosen.
func (f *PostForm) GroupID() (*uint, error) {
	if f.Group == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(f.Group, 10, 64)
	if err != nil {
		return nil, err
	}
	id := uint(n)
	return &id, nil
}

func isImage(data []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
