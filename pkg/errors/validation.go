package errors

import (
	"strings"
	"unicode"
)

// ValidateEntryPointID checks that id has the "<file>::<function>" shape
// with both halves non-empty.
func ValidateEntryPointID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "entry point cannot be empty")
	}
	i := strings.LastIndex(id, "::")
	if i <= 0 || i+2 >= len(id) {
		return New(ErrCodeInvalidInput, "entry point %q must look like <file>::<function>", id)
	}
	return nil
}

// ValidateUploadFilename validates the name of an uploaded file. It must be
// a plain basename; which dataset it feeds, if any, is decided by routing.
func ValidateUploadFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "filename cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidInput, "filename too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "filename contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return New(ErrCodeInvalidInput, "filename cannot contain path separators")
	}
	return nil
}
