// Package uploads validates user files and hands them to a storage provider that returns a URL.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Kind selects the validation rules and destination folder for a file.
type Kind string

const (
	KindResume       Kind = "resumes"
	KindProfilePhoto Kind = "profile-photos"
	KindCompanyLogo  Kind = "company-logos"
)

var (
	ErrInvalidFile     = errors.New("invalid file")
	ErrMissingFile     = fmt.Errorf("%w: no file uploaded", ErrInvalidFile)
	ErrFileTooLarge    = fmt.Errorf("%w: file too large", ErrInvalidFile)
	ErrUnsupportedType = fmt.Errorf("%w: unsupported file type", ErrInvalidFile)
)

const (
	imageLimit  = 2 << 20
	resumeLimit = 5 << 20
)

type rule struct {
	maxBytes int64
	allowed  []string
	label    string
}

var rules = map[Kind]rule{
	KindResume:       {maxBytes: resumeLimit, allowed: []string{"application/pdf"}, label: "PDF"},
	KindProfilePhoto: {maxBytes: imageLimit, allowed: []string{"image/jpeg", "image/png"}, label: "JPG, JPEG, and PNG"},
	KindCompanyLogo:  {maxBytes: imageLimit, allowed: []string{"image/jpeg", "image/png"}, label: "JPG, JPEG, and PNG"},
}

// File is an incoming upload as received from the client.
type File struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Prepared is a validated upload ready for a Storage provider.
type Prepared struct {
	Kind        Kind
	Name        string // server generated, with extension
	ContentType string
	Data        []byte
}

// Storage persists a prepared file and returns its public URL.
type Storage interface {
	Put(ctx context.Context, file *Prepared) (string, error)
}

// Prepare reads f and checks its size and sniffed content type against the rules for kind.
func Prepare(kind Kind, f *File) (*Prepared, error) {
	r, ok := rules[kind]
	if !ok {
		return nil, fmt.Errorf("unknown upload kind %q", kind)
	}
	if f == nil || f.Content == nil {
		return nil, ErrMissingFile
	}
	if f.Size > r.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", ErrFileTooLarge, r.maxBytes>>20)
	}

	data, err := io.ReadAll(io.LimitReader(f.Content, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrMissingFile
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", ErrFileTooLarge, r.maxBytes>>20)
	}

	mt := mimetype.Detect(data)
	allowed := false
	for _, a := range r.allowed {
		if mt.Is(a) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: only %s files are allowed", ErrUnsupportedType, r.label)
	}

	return &Prepared{
		Kind:        kind,
		Name:        uuid.NewString() + mt.Extension(),
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

// Reader returns a fresh reader over the prepared bytes.
func (p *Prepared) Reader() io.Reader {
	return bytes.NewReader(p.Data)
}

// Limits reports the size limit in bytes and the accepted formats for kind.
func Limits(kind Kind) (maxBytes int64, formats string) {
	r := rules[kind]
	return r.maxBytes, r.label
}
