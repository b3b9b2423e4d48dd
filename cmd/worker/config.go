package main

import (
	"log"

	"stagelink-backend/internal/shared/utils"
)

// Config holds the worker's own configuration
type Config struct {
	RedisAddr string
	SMTPHost  string
	SMTPPort  string
	EmailFrom string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr: utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		SMTPHost:  utils.GetEnvVariable("SMTP_HOST", "localhost"),
		SMTPPort:  utils.GetEnvVariable("SMTP_PORT", "1025"),
		EmailFrom: utils.GetEnvVariable("EMAIL_FROM", "noreply@stagelink.ph"),
	}

	log.Printf("[Config] Redis: %s, SMTP: %s:%s",
		cfg.RedisAddr, cfg.SMTPHost, cfg.SMTPPort)

	return cfg
}
