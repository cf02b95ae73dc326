package base64

import (
	enc "encoding/base64"
	"strings"
)

// GetContentType extracts the mime type from a data URI, e.g. "data:image/png;base64,...".
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode strips the data URI prefix, if any, and decodes the base64 payload.
func Decode(file string) ([]byte, error) {
	if idx := strings.Index(file, ";base64,"); idx != -1 {
		file = file[idx+len(";base64,"):]
	}

	return enc.StdEncoding.DecodeString(file)
}
