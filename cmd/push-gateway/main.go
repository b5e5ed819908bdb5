// cmd/push-gateway/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"foodsy/internal/pkg/bootstrap"
	"foodsy/internal/pkg/logger"
	"foodsy/internal/pkg/mq"
	"foodsy/internal/pkg/session"
	"foodsy/internal/pkg/tracing"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName   = "push-gateway"
	consumerGroup = "push-gateway-consumers"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var (
	nodeID   = serviceName + "-" + uuid.New().String()[:8]
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool { // 简化处理，允许所有跨域
			return true
		},
	}
)

// delivery 是一条待投递给某个用户的消息
type delivery struct {
	userID  string
	message []byte
}

// Hub 维护本节点所有活跃的连接，clients map 只在 run 这个 goroutine 里读写
type Hub struct {
	clients    map[string]*Client // 使用UserID作为Key
	register   chan *Client
	unregister chan *Client
	deliveries chan delivery
	done       chan struct{} // run 退出时关闭，解除还挂在上面三个 channel 上的发送方
	sessionMgr *session.Manager
}

func newHub(sessionMgr *session.Manager) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliveries: make(chan delivery, 256),
		done:       make(chan struct{}),
		sessionMgr: sessionMgr,
	}
}

// run 是 Hub 的事件循环
func (h *Hub) run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			// 同一用户重连时顶掉旧连接
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			log.Printf("Client %s registered on node %s", client.userID, nodeID)
		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				h.drop(client)
			}
			log.Printf("Client %s unregistered.", client.userID)
		case d := <-h.deliveries:
			client, ok := h.clients[d.userID]
			if !ok {
				// 用户不在本节点，丢弃；客户端重连后走查询接口兜底
				continue
			}
			select {
			case client.send <- d.message:
			default:
				// 写缓冲已满，视为慢客户端，断开
				h.drop(client)
			}
		case <-ctx.Done():
			for _, client := range h.clients {
				close(client.send)
			}
			return ctx.Err()
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client.userID)
	close(client.send)
	if err := h.sessionMgr.RemoveUserGateway(context.Background(), client.userID, nodeID); err != nil {
		log.Printf("Failed to remove session for user %s: %v", client.userID, err)
	}
}

// deliver 把一条消息交给事件循环投递。事件循环已退出时直接丢弃。
func (h *Hub) deliver(userID string, message []byte) {
	select {
	case h.deliveries <- delivery{userID: userID, message: message}:
	case <-h.done:
	}
}

// Client 是一个WebSocket连接的代表
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// readPump 读取客户端消息（这里只关心心跳），并顺带续期 Redis 会话
func (c *Client) readPump() {
	defer func() {
		// 事件循环可能已经先退出了，不能在 unregister 上死等
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := c.hub.sessionMgr.RefreshUserGateway(context.Background(), c.userID); err != nil {
			log.Printf("Failed to refresh session for user %s: %v", c.userID, err)
		}
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Unexpected close from user %s: %v", c.userID, err)
			}
			return
		}
	}
}

// writePump 把 send channel 里的消息写入连接，并按周期发 ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func serveWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	if err := hub.sessionMgr.SetUserGateway(r.Context(), userID, nodeID); err != nil {
		log.Printf("Failed to set session for user %s: %v", userID, err)
		conn.Close()
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), userID: userID}
	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// statusEvent 只解出路由需要的字段，原始消息原样转发给客户端
type statusEvent struct {
	UserID string `json:"userId"`
}

// consumeStatusEvents 消费订单状态流，把每条事件路由给本节点上的连接
func consumeStatusEvents(ctx context.Context, hub *Hub, brokers []string, topic string) error {
	reader := mq.NewKafkaReader(brokers, topic, consumerGroup)
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var event statusEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("Skipping malformed status event at offset %d: %v", msg.Offset, err)
			continue
		}
		if event.UserID == "" {
			continue
		}
		hub.deliver(event.UserID, msg.Value)
	}
}

func main() {
	bootstrap.Init()
	logger.Init(serviceName)
	cfg := bootstrap.GetCurrentConfig()

	tp, err := tracing.InitTracerProvider(serviceName, cfg.Infra.Jaeger.Endpoint)
	if err != nil {
		log.Fatalf("failed to initialize tracer provider: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Infra.Redis.Addr})
	defer redisClient.Close()

	hub := newHub(session.NewManager(redisClient))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r)
	})
	server := &http.Server{Addr: ":" + strconv.Itoa(cfg.Services.PushGateway.Port), Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := hub.run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return consumeStatusEvents(gctx, hub, cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.OrderEventsTopic)
	})
	g.Go(func() error {
		log.Printf("%s (%s) listening on %s", serviceName, nodeID, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("push-gateway exited with error: %v", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down tracer provider: %v", err)
	}
	log.Printf("Service %s gracefully shut down.", serviceName)
}
