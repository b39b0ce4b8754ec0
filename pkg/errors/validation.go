package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// debName matches a Debian binary package name with an optional
// architecture qualifier ("libc6", "g++-13", "libc6:i386").
var debName = regexp.MustCompile(`^[a-z0-9][a-z0-9+.\-]+(:[a-z0-9\-]+)?$`)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or argument
// injection into apt-cache, then checks Debian naming rules:
//   - No empty names
//   - No control characters
//   - No path traversal sequences or leading dashes
//   - Maximum length of 256 characters
//   - Lowercase letters, digits, '+', '-' and '.', at least two characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	if strings.HasPrefix(name, "-") {
		return New(ErrCodeInvalidPackage, "package name cannot start with '-'")
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	if !debName.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid package name %q: expected lowercase letters, digits, '+', '-' or '.'", name)
	}

	return nil
}
