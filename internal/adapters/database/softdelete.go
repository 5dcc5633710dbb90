package database

import (
	"errors"
	"time"

	"localinfo/internal/core/audit"

	"gorm.io/gorm"
)

// softDelete marks matching live rows of model as deleted. Rows already deleted keep their timestamp.
func softDelete(db *gorm.DB, model any, at time.Time, query string, args ...any) (int64, error) {
	res := db.Model(model).Where(query, args...).Updates(audit.SoftDeleteColumns(at))
	return res.RowsAffected, res.Error
}

// first loads one row into dest and reports whether it exists.
func first(db *gorm.DB, dest any, query string, args ...any) (bool, error) {
	err := db.Where(query, args...).First(dest).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
