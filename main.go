package main

import (
	"github.com/WinterOat/vault_service/config"
	"github.com/WinterOat/vault_service/internal/api"
	"github.com/WinterOat/vault_service/internal/logging"
	"github.com/sirupsen/logrus"
)

func main() {
	logging.Setup()
	logrus.Info("vault-service starting")

	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
