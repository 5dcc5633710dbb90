package database

import (
	"context"
	"time"

	"localinfo/internal/core/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository with gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := conn(ctx, repo.db).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uint) (*user.User, bool, error) {
	var u user.User
	found, err := first(conn(ctx, repo.db), &u, "id = ?", id)
	if !found {
		return nil, false, err
	}
	return &u, true, nil
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	var u user.User
	found, err := first(conn(ctx, repo.db), &u, "email = ?", email)
	if !found {
		return nil, false, err
	}
	return &u, true, nil
}

func (repo *UserRepositoryDatabase) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := conn(ctx, repo.db).Unscoped().Model(&user.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (repo *UserRepositoryDatabase) FindAll(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	if err := conn(ctx, repo.db).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepositoryDatabase) Update(ctx context.Context, u *user.User) (*user.User, error) {
	if err := conn(ctx, repo.db).Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	_, err := softDelete(conn(ctx, repo.db), &user.User{}, at, "id = ?", id)
	return err
}
