package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/clients/notifier"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/config"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/config/db"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/handlers"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares/logger"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/repository"
	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/service"
	"go.uber.org/zap"
)

func main() {
	err := initLogger()
	if err != nil {
		logger.Log.Warn(err.Error())
	}

	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf := config.InitConfig()

	database, err := db.NewDB(rootCtx, conf.DatabaseDNS)
	if err != nil {
		return err
	}
	defer database.Close()

	notifierClient := notifier.NewNotifierClient(conf.GatewayEndpoint, conf.BaseURL, conf.FinanceEmail)

	serverService := service.NewServerService(rootCtx, conf.Address, database)

	jwtConfig := &handlers.JWTConfig{
		SecretKey:      conf.JWTSecret,
		AccessTokenTTL: 15 * time.Minute,
	}
	serverService.SetRouter(jwtConfig, notifierClient)

	// Обход просроченных согласований живет рядом с сервером и
	// останавливается тем же сигналом.
	processingRepository := repository.NewProcessingRepository(database)
	validationService := service.NewValidationService(processingRepository, notifierClient)
	sweepService := service.NewSweepService(processingRepository, validationService, conf.Deadline, conf.SweepInterval)
	go sweepService.Run(rootCtx)

	serverErr := make(chan error, 1)
	logger.Log.Info("Running Server on", zap.String("address", conf.Address))
	go serverService.RunServer(&serverErr)

	select {
	case <-rootCtx.Done():
		logger.Log.Info("Received shutdown signal, shutting down.")
	case err = <-serverErr:
		logger.Log.Error("Server error", zap.Error(err))
	}

	if shutdownErr := serverService.Shutdown(); shutdownErr != nil {
		logger.Log.Error("Server shutdown error", zap.Error(shutdownErr))
	}

	return err
}

func initLogger() error {
	if err := logger.Initialize("debug"); err != nil {
		return err
	}
	return nil
}
