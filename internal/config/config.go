package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Alerts struct {
		Enabled           bool     `yaml:"enabled"`
		CoordinatorEmails []string `yaml:"coordinator_emails"`
	} `yaml:"alerts"`

	Matching struct {
		DefaultLimit int     `yaml:"default_limit"`
		MinScore     float64 `yaml:"min_score"`
	} `yaml:"matching"`

	Workers struct {
		ViabilityIntervalMinutes int `yaml:"viability_interval_minutes"`
	} `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which
// case the environment wins. The env path is what CI uses.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Loading configuration from environment")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "alerts@organmatch.test"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Matching.DefaultLimit == 0 {
		cfg.Matching.DefaultLimit = 20
	}
	if cfg.Matching.MinScore == 0 {
		cfg.Matching.MinScore = 30
	}
	if cfg.Workers.ViabilityIntervalMinutes == 0 {
		cfg.Workers.ViabilityIntervalMinutes = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
