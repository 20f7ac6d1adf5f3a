package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"kycintake/internal/kyc"
)

const defaultContentType = "application/octet-stream"

// readFile loads an uploaded part into memory. Fiber's BodyLimit already
// bounds the total request size.
func readFile(fh *multipart.FileHeader) (kyc.RawFile, error) {
	f, err := fh.Open()
	if err != nil {
		return kyc.RawFile{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return kyc.RawFile{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = defaultContentType
	}
	return kyc.RawFile{Filename: fh.Filename, Content: content, ContentType: ct}, nil
}

func readFiles(fhs []*multipart.FileHeader) ([]kyc.RawFile, error) {
	files := make([]kyc.RawFile, 0, len(fhs))
	for _, fh := range fhs {
		f, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// formValue returns the first value of a multipart field, trimmed.
func formValue(form *multipart.Form, name string) string {
	if vs := form.Value[name]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}
