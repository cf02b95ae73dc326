package main

import (
	"hoodly/config"
	"hoodly/di"
	"hoodly/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
