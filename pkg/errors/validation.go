package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds item, area and save identifiers.
const maxIDLength = 128

// ValidateID validates an item or area identifier.
//
// Identifiers are opaque to the engine, but they travel into element ids,
// file names and DOT output, so the rules are conservative:
//   - No empty ids
//   - No whitespace or control characters
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "id %q contains whitespace or control characters", id)
		}
	}
	return nil
}

// ValidateGroup validates an accept/group tag. Tags are compared exactly,
// so surrounding whitespace is almost always a typo and is rejected.
func ValidateGroup(group string) error {
	if group == "" {
		return New(ErrCodeInvalidInput, "group name cannot be empty")
	}
	if strings.TrimSpace(group) != group {
		return New(ErrCodeInvalidInput, "group name %q has surrounding whitespace", group)
	}
	return nil
}

// saveNameRegex matches names usable as snapshot keys and file names.
var saveNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSaveName validates a snapshot name for safety.
// It ensures the name is a simple basename without path components.
func ValidateSaveName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "save name cannot be empty")
	}
	if len(name) > maxIDLength {
		return New(ErrCodeInvalidInput, "save name too long (max %d characters)", maxIDLength)
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "save name cannot contain path traversal sequences (..)")
	}
	if !saveNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid save name: %q", name)
	}
	return nil
}
