package testutil

import (
	"context"

	"localinfo/internal/ports/storage"

	"github.com/stretchr/testify/mock"
)

// StorageMock is a testify mock of storage.ObjectStorage.
type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) Upload(ctx context.Context, file storage.File, namespace string) (string, error) {
	args := m.Called(ctx, file, namespace)
	return args.String(0), args.Error(1)
}

func (m *StorageMock) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

// OrphanRecorderMock is a testify mock of orphan.Recorder.
type OrphanRecorderMock struct {
	mock.Mock
}

func (m *OrphanRecorderMock) Record(ctx context.Context, urls []string) error {
	return m.Called(ctx, urls).Error(0)
}

func File(name string) storage.File {
	return storage.File{Name: name, ContentType: "image/png", Content: []byte(name)}
}
