package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxMapNameLength bounds stored map names.
const maxMapNameLength = 128

// mapNameRegex matches names usable as store keys and file basenames.
var mapNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateMapName validates the name a map is stored under.
// Names become file basenames and redis keys, so they are restricted to a
// conservative character set with no path components.
func ValidateMapName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "map name cannot be empty")
	}
	if len(name) > maxMapNameLength {
		return New(ErrCodeInvalidName, "map name too long (max %d characters)", maxMapNameLength)
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "map name cannot contain '..'")
	}
	if !mapNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid map name: %q", name)
	}
	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// colorRegex matches #RGB and #RRGGBB hex colors.
var colorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ValidateColor validates a hex color such as "#FF0000".
// An empty color is accepted and means "use the default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidStyle, "invalid color %q (expected #RGB or #RRGGBB)", color)
	}
	return nil
}

// lineStyles lists the line styles understood by the viewer.
var lineStyles = map[string]bool{
	"solid":  true,
	"dashed": true,
}

// ValidateLineStyle validates a link line style.
// An empty style is accepted and means "use the default".
func ValidateLineStyle(style string) error {
	if style == "" || lineStyles[style] {
		return nil
	}
	return New(ErrCodeInvalidStyle, "invalid line style %q (must be solid or dashed)", style)
}
