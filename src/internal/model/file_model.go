package model

import "io"

// FileUpload is a document received from a multipart form.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}
