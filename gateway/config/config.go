package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/pkg/logger"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"GATEWAY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"GATEWAY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

// CoreAPI is the REST backend that owns users, properties and bookings.
type CoreAPI struct {
	BaseURL string        `envconfig:"CORE_API_URL" default:"http://localhost:3000/api"`
	Timeout time.Duration `envconfig:"CORE_API_TIMEOUT" default:"15s"`
}

// PredictAPI is the rental price prediction service.
type PredictAPI struct {
	BaseURL string        `envconfig:"PREDICT_API_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"PREDICT_API_TIMEOUT" default:"10s"`
}

// Redis holds the session token. An empty Addr keeps it in memory.
type Redis struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD" json:"-"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
}

type Config struct {
	Server         HTTPServer `yaml:"server"`
	Kafka          kafka.Config
	CoreAPI        CoreAPI
	PredictAPI     PredictAPI
	Redis          Redis
	TokenKeyPrefix string     `envconfig:"TOKEN_KEY_PREFIX"`
	Log            logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
