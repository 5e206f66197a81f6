package openai

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
)

// FileResource is a named payload uploaded as one form-file field.
// If Reader is also an io.Closer it is closed once the upload is written,
// or when the request is rejected before sending.
type FileResource struct {
	Name   string
	Reader io.Reader
}

// FileFromPath opens the file at path. The base name is used as the
// uploaded file name.
func FileFromPath(path string) (FileResource, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileResource{}, err
	}
	return FileResource{Name: filepath.Base(path), Reader: f}, nil
}

// FileFromBytes wraps in-memory data. The bytes are sent as they are.
func FileFromBytes(name string, data []byte) FileResource {
	return FileResource{Name: name, Reader: bytes.NewReader(data)}
}

// formWriter accumulates a multipart body. The first error sticks and is
// reported by finish.
type formWriter struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newFormWriter() *formWriter {
	f := &formWriter{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// field writes a text field.
func (f *formWriter) field(name, value string) {
	if f.err != nil {
		return
	}
	if err := f.w.WriteField(name, value); err != nil {
		f.err = fmt.Errorf("failed to write %s field: %w", name, err)
	}
}

// optional writes a text field only when value is non-empty.
func (f *formWriter) optional(name, value string) {
	if value != "" {
		f.field(name, value)
	}
}

func (f *formWriter) optionalInt(name string, v *int) {
	if v != nil {
		f.field(name, strconv.Itoa(*v))
	}
}

func (f *formWriter) optionalFloat(name string, v *float64) {
	if v != nil {
		f.field(name, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

// file copies res into a form-file part named field.
// closeFiles closes every resource whose reader is an io.Closer.
func closeFiles(files ...FileResource) {
	for _, res := range files {
		if closer, ok := res.Reader.(io.Closer); ok {
			_ = closer.Close()
		}
	}
}

func (f *formWriter) file(field string, res FileResource) {
	defer closeFiles(res)
	if f.err != nil {
		return
	}
	if res.Reader == nil {
		f.err = fmt.Errorf("%s: no file content", field)
		return
	}

	name := res.Name
	if name == "" {
		name = field
	}
	part, err := f.w.CreateFormFile(field, name)
	if err != nil {
		f.err = fmt.Errorf("failed to create form file: %w", err)
		return
	}
	if _, err := io.Copy(part, res.Reader); err != nil {
		f.err = fmt.Errorf("failed to copy file content: %w", err)
	}
}

// finish closes the writer and returns the body and its content type.
func (f *formWriter) finish() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &f.buf, f.w.FormDataContentType(), nil
}
