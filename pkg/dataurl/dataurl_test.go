package dataurl_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-arrayfield/pkg/dataurl"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		mediaType string
		fileName  string
		payload   []byte
	}{
		{"plain text", "text/plain", "notes.txt", []byte("hello")},
		{"name needs escaping", "image/png", "weekly;report 2024.png", []byte{0x89, 0x50}},
		{"empty media type defaults", "", "blob.bin", []byte{0x00, 0x01}},
		{"empty payload", "text/plain", "empty.txt", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := dataurl.Encode(tc.mediaType, tc.fileName, tc.payload)
			if !dataurl.Is(raw) {
				t.Fatalf("Is(%q) = false", raw)
			}

			parsed, err := dataurl.Decode(raw)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if parsed.Name != tc.fileName {
				t.Fatalf("name = %q, want %q", parsed.Name, tc.fileName)
			}
			wantMedia := tc.mediaType
			if wantMedia == "" {
				wantMedia = dataurl.DefaultMediaType
			}
			if parsed.MediaType != wantMedia {
				t.Fatalf("media type = %q, want %q", parsed.MediaType, wantMedia)
			}
			if string(parsed.Payload) != string(tc.payload) {
				t.Fatalf("payload = %v, want %v", parsed.Payload, tc.payload)
			}
		})
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"notadataurl",
		"data:text/plain;name=x.txt",
		"data:text/plain;name=x.txt;base64,@@@",
	}
	for _, raw := range cases {
		if _, err := dataurl.Decode(raw); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", raw)
		}
	}
}

func TestName(t *testing.T) {
	raw := dataurl.Encode("text/plain", "report.txt", []byte("x"))
	if got := dataurl.Name(raw); got != "report.txt" {
		t.Fatalf("Name = %q", got)
	}
	if got := dataurl.Name("plain string"); got != "" {
		t.Fatalf("Name on non data URL = %q, want empty", got)
	}
}

func TestReadAllPreservesInputOrder(t *testing.T) {
	// Earlier files sleep longer, so completion order is the reverse of
	// input order and any completion-ordered assembly would misplace slots.
	const count = 16
	files := make([]dataurl.File, count)
	for idx := range files {
		name := fmt.Sprintf("file-%02d.txt", idx)
		files[idx] = slowFile{
			name:    name,
			payload: []byte(name),
			delay:   time.Duration(count-idx) * 2 * time.Millisecond,
		}
	}

	encoded, err := dataurl.ReadAll(context.Background(), files)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(encoded) != count {
		t.Fatalf("len = %d, want %d", len(encoded), count)
	}
	for idx, raw := range encoded {
		want := fmt.Sprintf("file-%02d.txt", idx)
		if got := dataurl.Name(raw); got != want {
			t.Fatalf("slot %d holds %q, want %q", idx, got, want)
		}
	}
}

// slowFile delays its open so reads finish out of input order.
type slowFile struct {
	name    string
	payload []byte
	delay   time.Duration
}

func (f slowFile) Name() string        { return f.name }
func (f slowFile) ContentType() string { return "text/plain" }
func (f slowFile) Open() (io.ReadCloser, error) {
	time.Sleep(f.delay)
	return io.NopCloser(strings.NewReader(string(f.payload))), nil
}

func TestReadAllPropagatesOpenFailure(t *testing.T) {
	files := []dataurl.File{
		dataurl.FromBytes("good.txt", "text/plain", []byte("ok")),
		failingFile{name: "bad.txt"},
	}

	_, err := dataurl.ReadAll(context.Background(), files)
	if err == nil || !strings.Contains(err.Error(), "bad.txt") {
		t.Fatalf("err = %v, want failure naming bad.txt", err)
	}
}

func TestReadAllEmptyInput(t *testing.T) {
	encoded, err := dataurl.ReadAll(context.Background(), nil)
	if err != nil || encoded != nil {
		t.Fatalf("ReadAll(nil) = %v, %v", encoded, err)
	}
}

func TestReadAllDetectsMediaType(t *testing.T) {
	files := []dataurl.File{dataurl.FromBytes("photo.png", "", nil)}

	encoded, err := dataurl.ReadAll(context.Background(), files)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	parsed, err := dataurl.Decode(encoded[0])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !strings.HasPrefix(parsed.MediaType, "image/png") {
		t.Fatalf("media type = %q, want image/png by extension", parsed.MediaType)
	}
}

type failingFile struct {
	name string
}

func (f failingFile) Name() string        { return f.name }
func (f failingFile) ContentType() string { return "" }
func (f failingFile) Open() (io.ReadCloser, error) {
	return nil, errors.New("disk on fire")
}
