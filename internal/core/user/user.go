package user

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"

	"localinfo/internal/core/apperr"
	"localinfo/internal/core/audit"
)

type Role string

const (
	RoleGeneral Role = "GENERAL"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole accepts the role names case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleGeneral:
		return RoleGeneral, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Roles is persisted as a comma separated column.
type Roles []Role

func (r Roles) Has(role Role) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

func (r Roles) Value() (driver.Value, error) {
	names := make([]string, 0, len(r))
	for _, v := range r {
		names = append(names, string(v))
	}
	sort.Strings(names)
	return strings.Join(names, ","), nil
}

func (r *Roles) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("roles: unsupported column type %T", src)
	}
	out := Roles{}
	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}
		role, err := ParseRole(part)
		if err != nil {
			return err
		}
		out = append(out, role)
	}
	*r = out
	return nil
}

// Region is the neighborhood triple attached to a user and copied onto posts.
type Region struct {
	Neighborhood string `gorm:"type:varchar(100)"`
	District     string `gorm:"type:varchar(100)"`
	City         string `gorm:"type:varchar(100)"`
}

type User struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(100);not null"`
	Nickname string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null"`
	Roles    Roles  `gorm:"type:varchar(64);not null"`
	Region   Region `gorm:"embedded"`
	audit.Base
}

// New builds a user after checking the required fields. password must already be hashed.
func New(name, nickname, email, password string, roles []string, region Region) (*User, error) {
	u := &User{
		Name:     strings.TrimSpace(name),
		Nickname: strings.TrimSpace(nickname),
		Email:    strings.TrimSpace(email),
		Password: password,
		Region:   region,
	}
	fields := map[string]string{}
	if u.Name == "" {
		fields["name"] = "must not be empty"
	}
	if u.Nickname == "" {
		fields["nickname"] = "must not be empty"
	}
	if !validEmail(u.Email) {
		fields["email"] = "must be a valid email address"
	}
	if password == "" {
		fields["password"] = "must not be empty"
	}
	if len(roles) == 0 {
		fields["roles"] = "at least one role is required"
	}
	for _, r := range roles {
		role, err := ParseRole(r)
		if err != nil {
			fields["roles"] = err.Error()
			break
		}
		if !u.Roles.Has(role) {
			u.Roles = append(u.Roles, role)
		}
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("invalid user", fields)
	}
	return u, nil
}

func validEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t\n")
}
