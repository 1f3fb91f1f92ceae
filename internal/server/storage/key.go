package storage

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"daylist/internal/filex"
)

// KeyFromURL extracts the object key from a previously stored access URL:
// the URL path with its leading slash stripped. Empty or unparsable input
// yields ok=false, never an error.
func KeyFromURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return "", false
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", false
	}
	return key, true
}

// BuildKey derives a collision-resistant object key for an uploaded file:
// the unix-millisecond timestamp, an underscore, the original name with its
// extension stripped and whitespace replaced by underscores, and the
// original extension.
func BuildKey(originalName string, now time.Time) string {
	ext := filex.Ext(originalName)
	base := filex.Sanitize(filex.StripExt(originalName))
	return fmt.Sprintf("%d_%s%s", now.UnixMilli(), base, ext)
}
