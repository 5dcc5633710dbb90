package orphan

import "context"

// Recorder remembers uploaded objects whose request failed after the upload.
type Recorder interface {
	Record(ctx context.Context, urls []string) error
}

type Queue interface {
	Recorder
	Pop(ctx context.Context, limit int64) ([]string, error)
}
