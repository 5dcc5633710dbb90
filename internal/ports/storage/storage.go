package storage

import "context"

// File is an uploaded attachment held in memory.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Uploader stores a file under namespace and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file File, namespace string) (string, error)
}

type Deleter interface {
	Delete(ctx context.Context, url string) error
}

type ObjectStorage interface {
	Uploader
	Deleter
}
