package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds stored canvas names.
const maxNameLength = 256

// ValidateCanvasName validates the name a canvas is stored under.
// Names become file names, redis keys and mongo document IDs, so the rules
// are conservative:
//   - No empty names
//   - Maximum length of 256 characters
//   - No control characters or null bytes
//   - No path separators and no "." or ".." names
//   - No leading dot (hidden files)
func ValidateCanvasName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "canvas name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "canvas name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "canvas name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "canvas name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "canvas name cannot start with a dot")
	}

	return nil
}

// ValidatePath validates a file path referenced from a canvas (file nodes and
// group backgrounds). Canvas paths are relative to the vault that holds the
// document.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "path must be relative (cannot start with /)")
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}
