// cmd/push-gateway/main_test.go
package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodsy/internal/pkg/session"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc, chan error) {
	t.Helper()
	hub := newHub(session.NewManager(nil))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- hub.run(ctx) }()
	return hub, cancel, errCh
}

func waitHubStopped(t *testing.T, errCh chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("hub event loop did not stop")
	}
}

// Hub 停机后 readPump 的收尾注销不能再死等事件循环
func TestReadPumpExitsAfterHubShutdown(t *testing.T) {
	hub, cancel, errCh := startHub(t)

	pumpExited := make(chan struct{})
	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		client := &Client{hub: hub, conn: conn, send: make(chan []byte, 1), userID: "SH-20260228-001"}
		hub.register <- client
		close(registered)
		go func() {
			client.readPump()
			close(pumpExited)
		}()
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("client was not registered")
	}

	// 先停事件循环，再断连接：此时注销只能靠 done 解除阻塞
	cancel()
	waitHubStopped(t, errCh)
	conn.Close()

	select {
	case <-pumpExited:
	case <-time.After(time.Second):
		t.Fatal("readPump still blocked on unregister after hub shutdown")
	}
}

func TestDeliverDropsMessagesAfterHubShutdown(t *testing.T) {
	hub, cancel, errCh := startHub(t)
	cancel()
	waitHubStopped(t, errCh)

	// 把投递缓冲填满，停机后的 deliver 依然必须立刻返回
	for i := 0; i < cap(hub.deliveries); i++ {
		hub.deliveries <- delivery{userID: "SH-20260228-001"}
	}

	delivered := make(chan struct{})
	go func() {
		hub.deliver("SH-20260228-001", []byte(`{"status":"Delivered"}`))
		close(delivered)
	}()

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("deliver blocked after hub shutdown")
	}
}
