package media

import "strings"

// mimeByExtension is the fixed table used when building upload data
// URIs. It is deliberately not a sniffer; unknown extensions fall back
// to image/png, which the upload endpoint accepts for any raster data.
var mimeByExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// TypeByExtension maps a file extension (with or without the leading
// dot) to an image MIME type.
func TypeByExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if mime, ok := mimeByExtension[ext]; ok {
		return mime
	}
	return "image/png"
}
