// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"log"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"foodsy/internal/pkg/nacos"
)

const configDataId = "foodsy-config.yaml"

// Config 是所有服务共享的配置结构。
// 优先从本地 YAML 文件加载；设置了 NACOS_SERVER_ADDRS 时改从配置中心拉取。
type Config struct {
	App struct {
		// 序号分配器后端: "mysql"（默认）或 "redis"
		SequenceBackend string `yaml:"sequenceBackend"`
		FeatureFlags    struct {
			EnableOffers bool `yaml:"enableOffers"`
		} `yaml:"featureFlags"`
	} `yaml:"app"`

	Infra struct {
		Mysql struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
		Redis struct {
			Addr string `yaml:"addr"`
		} `yaml:"redis"`
		Kafka struct {
			Brokers          []string `yaml:"brokers"`
			OrderEventsTopic string   `yaml:"orderEventsTopic"`
		} `yaml:"kafka"`
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
	} `yaml:"infra"`

	Services struct {
		Storefront struct {
			Port int `yaml:"port"`
		} `yaml:"storefront"`
		PushGateway struct {
			Port int `yaml:"port"`
		} `yaml:"pushGateway"`
	} `yaml:"services"`
}

var currentConfig atomic.Pointer[Config]

var nacosConfigClient *nacos.Client

// Init 加载配置。服务进程启动时最先调用。
func Init() {
	cfg := defaultConfig()

	if addrs := os.Getenv("NACOS_SERVER_ADDRS"); addrs != "" {
		client, err := nacos.NewClient(addrs, os.Getenv("NACOS_NAMESPACE"), os.Getenv("NACOS_GROUP"))
		if err != nil {
			log.Fatalf("FATAL: failed to create nacos client: %v", err)
		}
		nacosConfigClient = client

		content, err := client.GetConfig(configDataId)
		if err != nil {
			log.Fatalf("FATAL: failed to load config from nacos: %v", err)
		}
		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			log.Fatalf("FATAL: invalid config from nacos: %v", err)
		}
	} else {
		path := getEnv("CONFIG_FILE", "config/config.yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("WARN: config file %s not readable (%v), using defaults", path, err)
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("FATAL: invalid config file %s: %v", path, err)
		}
	}

	currentConfig.Store(cfg)
}

// GetCurrentConfig 返回当前生效的配置。Init 之前调用会返回默认配置。
func GetCurrentConfig() *Config {
	if cfg := currentConfig.Load(); cfg != nil {
		return cfg
	}
	cfg := defaultConfig()
	currentConfig.Store(cfg)
	return cfg
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.App.SequenceBackend = "mysql"
	cfg.App.FeatureFlags.EnableOffers = true
	cfg.Infra.Mysql.DSN = "root:root@tcp(localhost:3306)/foodsy?charset=utf8mb4&parseTime=True&loc=UTC"
	cfg.Infra.Redis.Addr = "localhost:6379"
	cfg.Infra.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Infra.Kafka.OrderEventsTopic = "order-status-events-v1"
	cfg.Infra.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	cfg.Services.Storefront.Port = 8080
	cfg.Services.PushGateway.Port = 8091
	return cfg
}
