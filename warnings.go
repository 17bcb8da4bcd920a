package folio

import "strings"

// WarningCode identifies a category of non-fatal loading issue.
type WarningCode int

const (
	// WarnUnknownFormat means the source format could not be determined
	// and the file was read as plain text.
	WarnUnknownFormat WarningCode = iota
	// WarnImageProbe means an image's dimensions could not be probed.
	WarnImageProbe
	// WarnImageText means text recognition over an image could not run.
	WarnImageText
	// WarnEmptyDocument means the source parsed but produced no elements.
	WarnEmptyDocument
)

// String returns the string representation of the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnUnknownFormat:
		return "unknown-format"
	case WarnImageProbe:
		return "image-probe"
	case WarnImageText:
		return "image-text"
	case WarnEmptyDocument:
		return "empty-document"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue encountered while loading a
// document. Operations succeed despite warnings; results may be
// incomplete in the way the message describes.
type Warning struct {
	Code    WarningCode
	Message string
}

// FormatWarnings joins warning messages into a single printable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.Message
	}
	return strings.Join(parts, "; ")
}
