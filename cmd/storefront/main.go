// cmd/storefront/main.go
package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"foodsy/internal/pkg/bootstrap"
	"foodsy/internal/pkg/logger"
	"foodsy/internal/pkg/mq"
	"foodsy/internal/pkg/sequence"
	catalogapp "foodsy/internal/service/catalog/application"
	cataloginfra "foodsy/internal/service/catalog/infrastructure"
	catalogiface "foodsy/internal/service/catalog/interfaces"
	offerapp "foodsy/internal/service/offer/application"
	offerinfra "foodsy/internal/service/offer/infrastructure"
	"foodsy/internal/service/offer/infrastructure/rule"
	offeriface "foodsy/internal/service/offer/interfaces"
	orderapp "foodsy/internal/service/order/application"
	"foodsy/internal/service/order/domain/port"
	orderinfra "foodsy/internal/service/order/infrastructure"
	"foodsy/internal/service/order/infrastructure/adapter"
	orderiface "foodsy/internal/service/order/interfaces"
	userapp "foodsy/internal/service/user/application"
	userinfra "foodsy/internal/service/user/infrastructure"
	useriface "foodsy/internal/service/user/interfaces"
	videoapp "foodsy/internal/service/video/application"
	videoinfra "foodsy/internal/service/video/infrastructure"
	videoiface "foodsy/internal/service/video/interfaces"
)

const serviceName = "storefront"

// main 函数是应用的"组装根" (Composition Root)
// 它的核心职责是：创建并组装所有依赖项，然后启动应用。
func main() {
	bootstrap.Init()
	logger.Init(serviceName)
	cfg := bootstrap.GetCurrentConfig()

	// 1. 基础设施客户端
	db, err := gorm.Open(mysql.Open(cfg.Infra.Mysql.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	if err := db.AutoMigrate(
		&sequence.CounterModel{},
		&userinfra.UserModel{},
		&cataloginfra.ShopModel{},
		&cataloginfra.ProductModel{},
		&offerinfra.OfferModel{},
		&videoinfra.VideoModel{},
		&orderinfra.OrderModel{},
		&orderinfra.OrderItemModel{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Infra.Redis.Addr})
	defer redisClient.Close()

	kafkaWriter := mq.NewKafkaWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.OrderEventsTopic)

	tracer := otel.Tracer(serviceName)

	// 2. 序号分配器：订单号/用户号都走同一个后端
	var allocator sequence.Allocator
	switch cfg.App.SequenceBackend {
	case "redis":
		allocator = sequence.NewRedisAllocator(redisClient)
	default:
		allocator = sequence.NewGormAllocator(db)
	}

	// 3. 业务服务组装
	userService := userapp.NewUserService(userinfra.NewGormUserRepository(db), allocator, tracer)

	productRepo := cataloginfra.NewCachedProductRepository(cataloginfra.NewGormProductRepository(db), redisClient)
	catalogService := catalogapp.NewCatalogService(productRepo, cataloginfra.NewGormShopRepository(db), tracer)

	ruleEngine, err := rule.NewCELRuleEngine()
	if err != nil {
		log.Fatalf("failed to initialize rule engine: %v", err)
	}
	offerService := offerapp.NewOfferService(offerinfra.NewGormOfferRepository(db), ruleEngine, tracer)

	videoService := videoapp.NewVideoService(videoinfra.NewGormVideoRepository(db))

	// 优惠计算可以按配置整体关掉，下单流程对 nil 容忍
	var offersForOrders port.OfferService
	if cfg.App.FeatureFlags.EnableOffers {
		offersForOrders = adapter.NewOfferLocalAdapter(offerService)
	}
	orderService := orderapp.NewOrderApplicationService(
		orderinfra.NewGormOrderRepository(db),
		allocator,
		adapter.NewStatusKafkaAdapter(kafkaWriter),
		offersForOrders,
		tracer,
	)

	// 4. 启动 HTTP 服务
	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        cfg.Services.Storefront.Port,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			orderiface.NewOrderHandler(orderService).RegisterRoutes(appCtx.Mux)
			useriface.NewUserHandler(userService).RegisterRoutes(appCtx.Mux)
			catalogiface.NewCatalogHandler(catalogService).RegisterRoutes(appCtx.Mux)
			offeriface.NewOfferHandler(offerService).RegisterRoutes(appCtx.Mux)
			videoiface.NewVideoHandler(videoService).RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if err := kafkaWriter.Close(); err != nil {
				log.Printf("Error closing kafka writer: %v", err)
			}
		},
	})
}
