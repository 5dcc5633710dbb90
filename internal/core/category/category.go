package category

import "localinfo/internal/core/audit"

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`
	audit.Base
}

// Defaults are inserted on startup when no category exists.
var Defaults = []string{
	"Neighborhood Questions",
	"Local News",
	"Lost and Found",
	"Recommendations",
}
