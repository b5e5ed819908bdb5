// internal/service/user/domain/repository.go
package domain

import "context"

// UserRepository 定义了用户数据的持久化接口
type UserRepository interface {
	// Create 插入新用户，email 冲突时返回 ErrEmailTaken。
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
}
