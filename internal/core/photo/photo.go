package photo

import "localinfo/internal/core/audit"

// Namespaces used when uploading to the object store.
const (
	PostNamespace    = "post-photo"
	CommentNamespace = "comment-photo"
)

type Photo struct {
	ID     uint   `gorm:"primaryKey"`
	URL    string `gorm:"type:varchar(1024);not null"`
	PostID uint   `gorm:"not null;index"`
	audit.Base
}

type CommentPhoto struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"type:varchar(1024);not null"`
	CommentID uint   `gorm:"not null;index"`
	audit.Base
}

// URLs flattens photos in the order given.
func URLs(photos []Photo) []string {
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		urls = append(urls, p.URL)
	}
	return urls
}

func CommentURLs(photos []CommentPhoto) []string {
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		urls = append(urls, p.URL)
	}
	return urls
}
