package audit

import (
	"time"

	"gorm.io/gorm"
)

// Status is the lifecycle tag stored next to the delete timestamp.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// Base carries the audit timestamps and soft-delete state shared by every table.
// gorm.DeletedAt makes every query through gorm skip deleted rows unless Unscoped is used.
type Base struct {
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	Status    Status         `gorm:"type:varchar(16);not null;default:ACTIVE;index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// BeforeCreate is promoted to every embedding model.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusActive
	}
	return nil
}

func (b *Base) MarkDeleted(at time.Time) {
	b.Status = StatusDeleted
	b.DeletedAt = gorm.DeletedAt{Time: at, Valid: true}
}

func (b Base) IsDeleted() bool {
	return b.DeletedAt.Valid || b.Status == StatusDeleted
}

// DeletedTimestamp returns the delete time, or nil for live rows.
func (b Base) DeletedTimestamp() *time.Time {
	if !b.DeletedAt.Valid {
		return nil
	}
	t := b.DeletedAt.Time
	return &t
}

// SoftDeleteColumns is the column set written by every soft delete.
func SoftDeleteColumns(at time.Time) map[string]any {
	return map[string]any{
		"status":     StatusDeleted,
		"deleted_at": at,
	}
}
