package dataurl

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// File abstracts an uploaded file so the reader works with multipart uploads,
// fs entries, or in-memory fixtures alike.
type File interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// ReadAll reads every file into a data URL. Each file is read on its own
// goroutine and writes into a slot reserved by its original index, so the
// output order always matches the input order no matter how the reads
// interleave. The first failure cancels the remaining reads and is returned.
func ReadAll(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	results := make([]string, len(files))
	group, ctx := errgroup.WithContext(ctx)
	for idx, file := range files {
		idx, file := idx, file
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			encoded, err := readOne(file)
			if err != nil {
				return fmt.Errorf("dataurl: read %q: %w", file.Name(), err)
			}
			results[idx] = encoded
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readOne(file File) (string, error) {
	reader, err := file.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	payload, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return Encode(resolveMediaType(file, payload), file.Name(), payload), nil
}

func resolveMediaType(file File, payload []byte) string {
	if declared := strings.TrimSpace(file.ContentType()); declared != "" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(file.Name())); byExt != "" {
		return byExt
	}
	if len(payload) > 0 {
		return http.DetectContentType(payload)
	}
	return DefaultMediaType
}

// FromBytes wraps an in-memory payload as a File.
func FromBytes(name, contentType string, payload []byte) File {
	return bytesFile{name: name, contentType: contentType, payload: payload}
}

type bytesFile struct {
	name        string
	contentType string
	payload     []byte
}

func (f bytesFile) Name() string        { return f.name }
func (f bytesFile) ContentType() string { return f.contentType }
func (f bytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(f.payload))), nil
}

// FromMultipart adapts a multipart upload header to the File interface.
func FromMultipart(header *multipart.FileHeader) File {
	return multipartFile{header: header}
}

type multipartFile struct {
	header *multipart.FileHeader
}

func (f multipartFile) Name() string {
	return f.header.Filename
}

func (f multipartFile) ContentType() string {
	return f.header.Header.Get("Content-Type")
}

func (f multipartFile) Open() (io.ReadCloser, error) {
	return f.header.Open()
}
