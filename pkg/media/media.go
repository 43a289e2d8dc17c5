// Package media turns simulated uploads into metadata. File contents are
// never kept: only the name, the size and the detected content type survive.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

const (
	FormField = "files"
	megabyte  = 1024 * 1024
	sniffLen  = 512
)

var (
	ErrNoFiles         = errors.New("no files uploaded")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Upload describes one received file.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
}

// ReadUploads parses the multipart form of r and returns every file of the
// FormField field. All files must have a content type starting with
// acceptPrefix ("video/", "image/").
func ReadUploads(r *http.Request, maxMemory int64, acceptPrefix string) ([]Upload, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[FormField]
	if len(headers) == 0 {
		return nil, ErrNoFiles
	}

	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		contentType, err := contentTypeOf(fh)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(contentType, acceptPrefix) {
			return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedType, fh.Filename, contentType)
		}
		uploads = append(uploads, Upload{Name: fh.Filename, Size: fh.Size, ContentType: contentType})
	}
	return uploads, nil
}

func contentTypeOf(fh *multipart.FileHeader) (string, error) {
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	return http.DetectContentType(head[:n]), nil
}

// FormatSize renders bytes as megabytes with two decimals, e.g. "2.35 MB".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/megabyte)
}

// ParseSize reads back sizes such as "45 MB", "2.3 MB" or "1.1 GB". Unknown
// formats count as zero.
func ParseSize(size string) int64 {
	fields := strings.Fields(size)
	if len(fields) != 2 {
		return 0
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || value < 0 {
		return 0
	}
	switch strings.ToUpper(fields[1]) {
	case "KB":
		return int64(value * 1024)
	case "MB":
		return int64(value * megabyte)
	case "GB":
		return int64(value * megabyte * 1024)
	}
	return 0
}
