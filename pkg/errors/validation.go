package errors

import (
	"strings"
	"unicode"
)

// MaxCourseIDLength bounds course identifiers read from spreadsheets.
const MaxCourseIDLength = 64

// ValidateCourseID checks that a course identifier is usable as a graph node.
//
// The rules are intentionally loose, since catalogs use many numbering
// schemes. Only structural problems are rejected:
//   - No empty identifiers (after trimming spaces)
//   - No control characters
//   - Maximum length of [MaxCourseIDLength] characters
func ValidateCourseID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidGraphInput, "course identifier cannot be empty")
	}

	if len(id) > MaxCourseIDLength {
		return New(ErrCodeInvalidGraphInput, "course identifier too long (max %d characters): %q", MaxCourseIDLength, id[:16]+"...")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraphInput, "course identifier contains control characters: %q", id)
		}
	}

	return nil
}

// ValidateExtension checks that path ends in one of the allowed extensions.
// Extensions are compared case-insensitively and must include the dot.
func ValidateExtension(path string, allowed ...string) error {
	lower := strings.ToLower(path)
	for _, ext := range allowed {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported file type %q (want one of: %s)", path, strings.Join(allowed, ", "))
}
