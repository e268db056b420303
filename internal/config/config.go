// Package config reads the runtime configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration of the service and of the command line front end.
type Config struct {
	Port       int    `envconfig:"PORT" default:"8080"`
	GinLogging string `envconfig:"GIN_LOGGING" default:"on"`

	DBHost string `envconfig:"DBHOST" default:"localhost:3306"`
	DBUser string `envconfig:"DBUSER" default:"root"`
	DBPwd  string `envconfig:"DBPWD"`
	DBName string `envconfig:"DBNAME" default:"test"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
	LogOutput string `envconfig:"LOG_OUTPUT" default:"stderr"`

	APIURL     string        `envconfig:"CRM_API_URL" default:"http://localhost:8080"`
	APITimeout time.Duration `envconfig:"CRM_API_TIMEOUT" default:"10s"`

	Theme            string `envconfig:"CRM_THEME" default:"system"`
	SidebarCollapsed bool   `envconfig:"CRM_SIDEBAR_COLLAPSED" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	return &cfg, nil
}

// RequestLogging reports whether gin shall log every HTTP request.
func (c *Config) RequestLogging() bool {
	return !strings.EqualFold(c.GinLogging, "off")
}

// Addr is the listen address of the service.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
