package services

import "io"

// Upload is a file received from a client, typically a multipart part
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
