// internal/pkg/session/manager.go
package session

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:gateway:"
	// 会话依赖 WebSocket 心跳续期，心跳断开后最多残留一个 TTL 周期
	sessionTTL = 5 * time.Minute
)

// Manager 在 Redis 中维护 userID -> 网关节点 的在线会话映射。
// 推送侧靠它判断用户是否在线、连在哪个网关节点上。
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// SetUserGateway 记录用户当前连接的网关节点。
func (m *Manager) SetUserGateway(ctx context.Context, userID, nodeID string) error {
	key := sessionKeyPrefix + userID
	if err := m.client.Set(ctx, key, nodeID, sessionTTL).Err(); err != nil {
		return pkgerrors.Wrapf(err, "set session for user %s", userID)
	}
	return nil
}

// RefreshUserGateway 心跳续期。
func (m *Manager) RefreshUserGateway(ctx context.Context, userID string) error {
	return m.client.Expire(ctx, sessionKeyPrefix+userID, sessionTTL).Err()
}

// GetUserGateway 返回用户所在的网关节点，不在线时返回空串。
func (m *Manager) GetUserGateway(ctx context.Context, userID string) (string, error) {
	nodeID, err := m.client.Get(ctx, sessionKeyPrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", pkgerrors.Wrapf(err, "get session for user %s", userID)
	}
	return nodeID, nil
}

// RemoveUserGateway 连接断开时清除会话。只有值仍指向本节点时才删除，
// 避免把用户重连到其他节点后的新会话误删掉。
func (m *Manager) RemoveUserGateway(ctx context.Context, userID, nodeID string) error {
	key := sessionKeyPrefix + userID
	current, err := m.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	if current != nodeID {
		return nil
	}
	return m.client.Del(ctx, key).Err()
}
