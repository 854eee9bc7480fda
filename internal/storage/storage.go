package storage

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Asset directories shared by every backend
const (
	ProfileImageDir = "images"
	ChatImageDir    = "chat-image"
	GiftDir         = "gift"
)

// Store persists uploaded files. Callers keep only the returned name, never the bytes.
type Store interface {
	Save(ctx context.Context, dir, name string, body io.Reader) error
	List(ctx context.Context, dir string) ([]string, error)
	URL(ctx context.Context, dir, name string) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a client supplied filename to a safe base name.
// It returns "" when nothing usable is left.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	return name
}

// UniqueName prefixes a sanitized filename with a random id so that
// two uploads of "photo.jpg" never overwrite each other.
func UniqueName(name string) string {
	clean := SanitizeFilename(name)
	if clean == "" {
		return uuid.New().String()
	}
	return uuid.New().String() + "_" + clean
}

// Extension returns the lower-cased extension of name without the dot
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AllowedExtension reports whether name carries one of the allowed extensions
func AllowedExtension(name string, allowed []string) bool {
	ext := Extension(name)
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}
