package dictionary

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnknownFormat is returned for files whose extension maps to no format.
var ErrUnknownFormat = errors.New("unknown phrase file format")

// FileFormat represents the phrase list file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // One phrase per line
	FormatMsgpack            // Msgpack array of strings
)

// FormatInfo contains metadata about a phrase file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Phrase List",
		Extensions:  []string{".txt"},
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "Msgpack Phrase List",
		Extensions:  []string{".msgpack", ".mpk"},
	},
}

func (f FileFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format of path from its extension
func DetectFormat(path string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, info := range ListSupportedFormats() {
		if slices.Contains(info.Extensions, ext) {
			return info.Format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// ListSupportedFormats returns all supported formats
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, 0, len(supportedFormats))
	for _, info := range supportedFormats {
		formats = append(formats, info)
	}
	slices.SortFunc(formats, func(a, b FormatInfo) int {
		return int(a.Format) - int(b.Format)
	})
	return formats
}
