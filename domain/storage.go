package domain

// FileOptions constrains a single object-storage upload.
type FileOptions struct {
	MaxSize      int64
	AllowedTypes []string
	ContentType  string
}

// UploadResult carries the public URL and the stored object path of an upload.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}
