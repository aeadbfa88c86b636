package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	ApiPort string `mapstructure:"api_port"`
	LogPath string `mapstructure:"log_path"`

	Database string `mapstructure:"database"` // "sqlite3" ou "postgres"
	DbHost   string `mapstructure:"db_host"`
	DbPort   string `mapstructure:"db_port"`
	DbUser   string `mapstructure:"db_user"`
	DbName   string `mapstructure:"db_name"`
	DbPass   string `mapstructure:"db_pass"`

	Security struct {
		JwtSecret       string `mapstructure:"jwt_secret"`
		TokenValidHours int    `mapstructure:"token_valid_hours"`
	} `mapstructure:"security"`

	Exa struct {
		MaxResults int `mapstructure:"max_results"`
	} `mapstructure:"exa"`
}

// Get carrega config.json do diretório informado, com override por env vars
// (ex: SECURITY_JWT_SECRET, API_PORT).
func Get(path string) Configuration {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.Fatalf("config: %v", err)
		}
		// sem config.json seguimos só com env vars
	}

	var c Configuration
	if err := viper.Unmarshal(&c); err != nil {
		logrus.Fatalf("config: %v", err)
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
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	if c.Security.TokenValidHours <= 0 {
		c.Security.TokenValidHours = 24
	}
	if c.Exa.MaxResults <= 0 {
		c.Exa.MaxResults = 4
	}

	return c
}
