package config

import (
	"time"

	"github.com/Agregadores-I2A2/ProjetoFinal-Artefatos/internal/middlewares/logger"
	"github.com/caarlos0/env"
	"go.uber.org/zap"
)

type Config struct {
	Address string `env:"RUN_ADDRESS"`

	DatabaseDNS string `env:"DATABASE_URI"`

	// Шлюз уведомлений и адреса писем.
	GatewayEndpoint string `env:"GATEWAY_ENDPOINT"`
	FinanceEmail    string `env:"FINANCE_EMAIL"`
	BaseURL         string `env:"APP_BASE_URL"`

	JWTSecret string `env:"JWT_SECRET"`

	// Сроки жизненного цикла валидации. Значения настраиваемые,
	// по умолчанию 48 часов дедлайна и час между проходами.
	Deadline      time.Duration `env:"VALIDATION_DEADLINE"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

func InitConfig() *Config {
	flags := Flags{}
	flags.Init()

	cfg := Config{
		Address:         flags.address,
		DatabaseDNS:     flags.dbDNS,
		GatewayEndpoint: flags.gatewayEndpoint,
		FinanceEmail:    flags.financeEmail,
		BaseURL:         flags.baseURL,
		JWTSecret:       flags.jwtSecret,
		Deadline:        flags.deadline,
		SweepInterval:   flags.sweepInterval,
	}
	cfg.parseEnv()

	return &cfg
}

func (cfg *Config) parseEnv() {
	err := env.Parse(cfg)
	if err != nil {
		logger.Log.Warn("Getting an error while parsing the configuration", zap.String("err", err.Error()))
	}
}
