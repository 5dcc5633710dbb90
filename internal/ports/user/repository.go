package user

import (
	"context"
	"time"

	"localinfo/internal/core/user"
)

// UserRepository persists users. Lookups report absence through the bool result.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uint) (*user.User, bool, error)
	FindByEmail(ctx context.Context, email string) (*user.User, bool, error)
	// EmailTaken also counts soft-deleted users, whose rows still hold the unique email.
	EmailTaken(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	Update(ctx context.Context, u *user.User) (*user.User, error)
	SoftDelete(ctx context.Context, id uint, at time.Time) error
}

type RegisterRequest struct {
	Name         string   `json:"name" binding:"required"`
	Nickname     string   `json:"nickname" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required"`
	Roles        []string `json:"roles" binding:"required,min=1"`
	Neighborhood string   `json:"neighborhood"`
	District     string   `json:"district"`
	City         string   `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type RegionDTO struct {
	Neighborhood string `json:"neighborhood"`
	District     string `json:"district"`
	City         string `json:"city"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Region    RegionDTO `json:"region"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
