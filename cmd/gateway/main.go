package main

import (
	stdLog "log"
	"time"

	"github.com/Astemirdum/rental-service/gateway/app"
	"github.com/Astemirdum/rental-service/gateway/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
		config.WithTokenKeyPrefix("rental:"),
	)

	app.Run(cfg)
}
