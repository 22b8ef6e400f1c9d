// Package dataurl encodes uploaded files as inline data URLs of the form
// data:<mime>;name=<filename>;base64,<payload>, the representation the
// multi-file array mode stores as its item values.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	scheme     = "data:"
	namePrefix = "name="
	base64Mark = ";base64,"
)

// DefaultMediaType is used when a file reports no content type.
const DefaultMediaType = "application/octet-stream"

// Encode builds a data URL from a media type, a file name, and the raw
// payload. The name is escaped so separators in file names cannot corrupt
// the URL.
func Encode(mediaType, name string, payload []byte) string {
	media := strings.TrimSpace(mediaType)
	if media == "" {
		media = DefaultMediaType
	}
	var builder strings.Builder
	builder.WriteString(scheme)
	builder.WriteString(media)
	builder.WriteByte(';')
	builder.WriteString(namePrefix)
	builder.WriteString(url.PathEscape(name))
	builder.WriteString(base64Mark)
	builder.WriteString(base64.StdEncoding.EncodeToString(payload))
	return builder.String()
}

// Parsed holds the components of a decoded data URL.
type Parsed struct {
	MediaType string
	Name      string
	Payload   []byte
}

// Decode splits a data URL back into its media type, file name, and payload.
func Decode(raw string) (Parsed, error) {
	if !strings.HasPrefix(raw, scheme) {
		return Parsed{}, fmt.Errorf("dataurl: missing %q prefix", scheme)
	}
	rest := raw[len(scheme):]
	idx := strings.Index(rest, base64Mark)
	if idx < 0 {
		return Parsed{}, errors.New("dataurl: missing base64 payload marker")
	}
	header, encoded := rest[:idx], rest[idx+len(base64Mark):]

	parsed := Parsed{MediaType: DefaultMediaType}
	for i, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if i == 0 {
			if part != "" {
				parsed.MediaType = part
			}
			continue
		}
		if strings.HasPrefix(part, namePrefix) {
			name, err := url.PathUnescape(part[len(namePrefix):])
			if err != nil {
				return Parsed{}, fmt.Errorf("dataurl: unescape name: %w", err)
			}
			parsed.Name = name
		}
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Parsed{}, fmt.Errorf("dataurl: decode payload: %w", err)
	}
	parsed.Payload = payload
	return parsed, nil
}

// Name extracts the embedded file name, or "" when the value is not a data
// URL.
func Name(raw string) string {
	parsed, err := Decode(raw)
	if err != nil {
		return ""
	}
	return parsed.Name
}

// Is reports whether a value looks like a data URL.
func Is(raw string) bool {
	return strings.HasPrefix(raw, scheme) && strings.Contains(raw, base64Mark)
}
