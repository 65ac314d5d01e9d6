package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Security  SecurityConfig  `json:"security"`
	Scheduler SchedulerConfig `json:"scheduler"`
}

type SecurityConfig struct {
	JwtSecret         string `json:"jwt_secret"`
	ActivationCodeLen int    `json:"activation_code_len"`
	TokenValidHours   int    `json:"token_valid_hours"`
}

type SchedulerConfig struct {
	// Intervalo entre varreduras do reconciler de planos, em minutos.
	ReconcileIntervalMinutes int `json:"reconcile_interval_minutes"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.ActivationCodeLen <= 0 {
		c.Security.ActivationCodeLen = 6
	}
	if c.Security.TokenValidHours <= 0 {
		c.Security.TokenValidHours = 24
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Scheduler.ReconcileIntervalMinutes <= 0 {
		c.Scheduler.ReconcileIntervalMinutes = 60
	}

	return c
}
