// Package attach converts a user-selected file into a transport-ready
// encoded payload. Stateless; safe to call concurrently for unrelated files.
package attach

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/neilberkman/biodish/internal/core/models"
)

// MaxSize caps attachment files. Lab report PDFs and photos fit comfortably;
// anything bigger would blow the provider's request limit anyway.
const MaxSize = 16 << 20 // 16 MiB

var (
	ErrEmptyFile = errors.New("attachment file is empty")
	ErrTooLarge  = fmt.Errorf("attachment exceeds %d bytes", MaxSize)
)

// Encode reads the file at path and returns its base64-encoded payload with
// a sniffed mime type. No data-URI header is included.
func Encode(path string) (*models.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	if info.Size() == 0 {
		return nil, ErrEmptyFile
	}
	if info.Size() > MaxSize {
		return nil, ErrTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return &models.Attachment{
		MimeType: detectMime(path, data),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// detectMime prefers the file extension and falls back to content sniffing.
func detectMime(path string, data []byte) string {
	if ext := filepath.Ext(path); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			// Strip any charset parameter
			if i := strings.IndexByte(t, ';'); i >= 0 {
				t = t[:i]
			}
			return t
		}
	}
	return http.DetectContentType(data)
}
