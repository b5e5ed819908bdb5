// internal/service/user/domain/user.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidUser  = errors.New("invalid user")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// User 是注册用户。ID 形如 VE-20260228-001，由用户名前缀 + 注册日 + 当日序号组成。
type User struct {
	ID        string
	Username  string
	Email     string
	Address   string
	City      string
	Latitude  *float64 // 可选的默认收货坐标
	Longitude *float64
	CreatedAt time.Time
}

// Validate 注册入参校验。
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.Wrap(ErrInvalidUser, "username is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.Wrap(ErrInvalidUser, "email is invalid")
	}
	if (u.Latitude == nil) != (u.Longitude == nil) {
		return errors.Wrap(ErrInvalidUser, "latitude and longitude must be provided together")
	}
	return nil
}
