package catalog

import (
	"net/url"
	"strings"
)

// StorageURL returns the public URL of file in a storage bucket. Each path
// segment is escaped; an empty file yields an empty URL.
func StorageURL(baseURL, bucket, file string) string {
	if file == "" {
		return ""
	}

	clean := strings.TrimPrefix(file, "/")
	segments := strings.Split(clean, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}

	return strings.TrimSuffix(baseURL, "/") + "/storage/v1/object/public/" + bucket + "/" + strings.Join(segments, "/")
}
