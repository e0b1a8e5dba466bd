package filecheck

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"inn/shared/failure"
)

const maxExtensionLength = 10

var (
	allowedExtensions = map[string]string{
		"pdf":  "application/pdf",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
	}

	allowedMimeTypes = map[string]struct{}{
		"application/pdf": {},
		"image/jpeg":      {},
		"image/png":       {},
	}

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// Result describes a file that passed every validation gate.
type Result struct {
	SanitizedName string
	Extension     string
	ContentType   string
}

// Validate runs the upload gates in order: size, name sanitization, extension,
// extension allow-list, and finally a magic-byte sniff of the content. The
// declared filename never decides acceptance on its own; the sniffed type must
// also be allowed.
func Validate(fileName string, content []byte, maxSize int64) (*Result, error) {
	if int64(len(content)) > maxSize {
		return nil, failure.PayloadTooLarge(fmt.Sprintf("file exceeds maximum allowed size of %d bytes", maxSize)) //nolint:wrapcheck
	}

	sanitized := SanitizeName(fileName)
	if sanitized == "" {
		return nil, failure.BadRequestFromString("file name is required") //nolint:wrapcheck
	}

	ext, err := extension(sanitized)
	if err != nil {
		return nil, err
	}

	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, failure.BadRequestFromString(fmt.Sprintf("file extension .%s is not allowed", ext)) //nolint:wrapcheck
	}

	detected := mimetype.Detect(content)
	if _, ok := allowedMimeTypes[baseMime(detected.String())]; !ok {
		return nil, failure.BadRequestFromString(fmt.Sprintf("file content type %s is not allowed", baseMime(detected.String()))) //nolint:wrapcheck
	}

	return &Result{
		SanitizedName: sanitized,
		Extension:     ext,
		ContentType:   contentType,
	}, nil
}

// SanitizeName strips any path components and replaces unsafe characters,
// leaving a bare file name safe to embed in an object key. Names without any
// usable content (empty, ".", "..") sanitize to the empty string.
func SanitizeName(fileName string) string {
	// Windows-style separators are path separators too.
	name := strings.ReplaceAll(fileName, `\`, "/")
	name = filepath.Base(name)

	if name == "." || name == ".." || name == "/" {
		return ""
	}

	return unsafeChars.ReplaceAllString(name, "_")
}

func extension(fileName string) (string, error) {
	dot := strings.LastIndex(fileName, ".")
	if dot < 0 || dot == len(fileName)-1 {
		return "", failure.BadRequestFromString("file must have an extension") //nolint:wrapcheck
	}

	ext := strings.ToLower(fileName[dot+1:])
	if len(ext) > maxExtensionLength {
		return "", failure.BadRequestFromString("file extension is too long") //nolint:wrapcheck
	}

	return ext, nil
}

func baseMime(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		return strings.TrimSpace(contentType[:idx])
	}

	return contentType
}
