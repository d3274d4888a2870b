package store

import (
	"fmt"
	"strings"
)

// forbiddenChars are rejected anywhere in a directory or file name.
const forbiddenChars = `/\:*?"<>|`

// ValidateDirectoryName checks a directory name against the naming rules.
func ValidateDirectoryName(name string) error {
	return validateName(name, false)
}

// ValidateFileName checks a file name against the naming rules.
// File names must carry a non-empty extension after the last dot.
func ValidateFileName(name string) error {
	return validateName(name, true)
}

func validateName(name string, isFile bool) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if trimmed == "." || trimmed == ".." {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, trimmed)
	}
	if i := strings.IndexAny(trimmed, forbiddenChars); i >= 0 {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, trimmed, trimmed[i])
	}
	if isFile {
		if !strings.Contains(trimmed, ".") || strings.HasSuffix(trimmed, ".") {
			return fmt.Errorf("%w: file %q needs an extension", ErrInvalidName, trimmed)
		}
	}
	return nil
}

// ExtensionOf returns the lowercase text after the last dot, or "" when
// the name carries no extension.
func ExtensionOf(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
