package uploads

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")
	pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
)

func file(data []byte) *File {
	return &File{Name: "upload", Size: int64(len(data)), Content: bytes.NewReader(data)}
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		file    *File
		wantErr error
		wantExt string
	}{
		{"pdf resume", KindResume, file(pdfBytes), nil, ".pdf"},
		{"png photo", KindProfilePhoto, file(pngBytes), nil, ".png"},
		{"png resume rejected", KindResume, file(pngBytes), ErrUnsupportedType, ""},
		{"pdf logo rejected", KindCompanyLogo, file(pdfBytes), ErrUnsupportedType, ""},
		{"missing", KindResume, nil, ErrMissingFile, ""},
		{"empty", KindResume, file(nil), ErrMissingFile, ""},
		{"declared too large", KindProfilePhoto, &File{Size: imageLimit + 1, Content: bytes.NewReader(pngBytes)}, ErrFileTooLarge, ""},
		{"actually too large", KindResume, &File{Size: 10, Content: bytes.NewReader(append(pdfBytes, make([]byte, resumeLimit)...))}, ErrFileTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Prepare(tt.kind, tt.file)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidFile)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(p.Name, tt.wantExt), p.Name)
			assert.Equal(t, tt.kind, p.Kind)
		})
	}
}

func TestLocalStoragePut(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "http://localhost:8080/uploads/")

	p, err := Prepare(KindResume, file(pdfBytes))
	require.NoError(t, err)

	url, err := s.Put(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/resumes/"+p.Name, url)

	written, err := os.ReadFile(filepath.Join(dir, "resumes", p.Name))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, written)
}
