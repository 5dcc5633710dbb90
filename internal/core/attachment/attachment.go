// Package attachment uploads request files and keeps track of what a failed
// request left behind in object storage.
package attachment

import (
	"context"
	"fmt"

	"localinfo/internal/core/apperr"
	"localinfo/internal/ports/orphan"
	"localinfo/internal/ports/storage"

	"go.uber.org/zap"
)

type Uploads struct {
	uploader storage.Uploader
	orphans  orphan.Recorder
	logger   *zap.Logger
}

// NewUploads builds the helper. orphans may be nil, in which case abandoned
// uploads are only logged.
func NewUploads(uploader storage.Uploader, orphans orphan.Recorder, logger *zap.Logger) *Uploads {
	return &Uploads{uploader: uploader, orphans: orphans, logger: logger}
}

// Batch collects the URLs produced during one request.
type Batch struct {
	u    *Uploads
	urls []string
}

func (u *Uploads) Begin() *Batch {
	return &Batch{u: u}
}

// Upload stores files in order and returns their URLs. The first failure stops
// the batch; URLs uploaded before it stay recorded on the batch.
func (b *Batch) Upload(ctx context.Context, files []storage.File, namespace string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, f := range files {
		url, err := b.u.uploader.Upload(ctx, f, namespace)
		if err != nil {
			return nil, apperr.UpstreamIO(fmt.Sprintf("upload %s file %d", namespace, i), err)
		}
		urls = append(urls, url)
		b.urls = append(b.urls, url)
	}
	return urls, nil
}

func (b *Batch) URLs() []string { return b.urls }

// Abandon reports the batch's uploads as orphaned after the request failed with cause.
func (b *Batch) Abandon(ctx context.Context, cause error) {
	if len(b.urls) == 0 {
		return
	}
	b.u.logger.Warn("request failed after upload, objects orphaned",
		zap.Strings("urls", b.urls),
		zap.Error(cause),
	)
	if b.u.orphans == nil {
		return
	}
	if err := b.u.orphans.Record(context.WithoutCancel(ctx), b.urls); err != nil {
		b.u.logger.Error("could not record orphaned uploads", zap.Strings("urls", b.urls), zap.Error(err))
	}
}
