package filecheck_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/shared/failure"
	"inn/shared/filecheck"
)

var (
	pdfContent  = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	pngContent  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}
	jpegContent = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	exeContent  = []byte{'M', 'Z', 0x90, 0x00, 0x03, 0x00, 0x00, 0x00, 0x04, 0x00}
)

func TestValidate(t *testing.T) {
	const maxSize = int64(1024)

	tests := []struct {
		name     string
		fileName string
		content  []byte
		wantErr  bool
		wantCode int
		wantName string
		wantType string
	}{
		{
			name:     "valid pdf",
			fileName: "passport.pdf",
			content:  pdfContent,
			wantName: "passport.pdf",
			wantType: "application/pdf",
		},
		{
			name:     "valid png",
			fileName: "id-card.png",
			content:  pngContent,
			wantName: "id-card.png",
			wantType: "image/png",
		},
		{
			name:     "valid jpeg",
			fileName: "photo.JPG",
			content:  jpegContent,
			wantName: "photo.JPG",
			wantType: "image/jpeg",
		},
		{
			name:     "path traversal stripped",
			fileName: "../../etc/passwd.pdf",
			content:  pdfContent,
			wantName: "passwd.pdf",
			wantType: "application/pdf",
		},
		{
			name:     "windows path stripped",
			fileName: `C:\uploads\scan.pdf`,
			content:  pdfContent,
			wantName: "scan.pdf",
			wantType: "application/pdf",
		},
		{
			name:     "unsafe characters replaced",
			fileName: "my scan (1).pdf",
			content:  pdfContent,
			wantName: "my_scan__1_.pdf",
			wantType: "application/pdf",
		},
		{
			name:     "oversize file",
			fileName: "big.pdf",
			content:  make([]byte, maxSize+1),
			wantErr:  true,
			wantCode: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "missing extension",
			fileName: "passport",
			content:  pdfContent,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "empty file name",
			fileName: "",
			content:  pdfContent,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "trailing dot",
			fileName: "passport.",
			content:  pdfContent,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "disallowed extension",
			fileName: "notes.txt",
			content:  pdfContent,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "executable disguised as pdf",
			fileName: "invoice.pdf",
			content:  exeContent,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "plain text disguised as png",
			fileName: "image.png",
			content:  []byte("hello world"),
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := filecheck.Validate(tt.fileName, tt.content, maxSize)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, result.SanitizedName)
			assert.Equal(t, tt.wantType, result.ContentType)
		})
	}
}

func TestValidate_SizeCheckedFirst(t *testing.T) {
	// An oversize file reports 413 even when the rest of the gates would also
	// reject it.
	_, err := filecheck.Validate("malware.exe", make([]byte, 11), 10)

	assert.Equal(t, http.StatusRequestEntityTooLarge, failure.GetCode(err))
}

func TestValidate_EmptyNameRejectedAtSanitization(t *testing.T) {
	// A missing name fails at the sanitization gate, not as a missing
	// extension further down.
	_, err := filecheck.Validate("", pdfContent, 1024)

	require.Error(t, err)
	assert.Equal(t, "file name is required", err.Error())
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "plain name", fileName: "passport.pdf", want: "passport.pdf"},
		{name: "unix traversal", fileName: "../../etc/passwd.pdf", want: "passwd.pdf"},
		{name: "windows traversal", fileName: `..\..\windows\system32.png`, want: "system32.png"},
		{name: "spaces and specials", fileName: "my file @2024!.jpg", want: "my_file__2024_.jpg"},
		{name: "already sanitized is stable", fileName: "my_file__2024_.jpg", want: "my_file__2024_.jpg"},
		{name: "empty name", fileName: "", want: ""},
		{name: "bare dot", fileName: ".", want: ""},
		{name: "bare parent dir", fileName: "..", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filecheck.SanitizeName(tt.fileName))
		})
	}
}
