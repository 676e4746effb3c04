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

	Storage struct {
		BasePath string `yaml:"base_path"` // Корень файлового хранилища
		BaseURL  string `yaml:"base_url"`  // Публичный префикс для раздачи файлов
	} `yaml:"storage"`

	Upload struct {
		MaxSize     int64    `yaml:"max_size"`     // Максимальный размер файла в байтах
		AllowedExts []string `yaml:"allowed_exts"` // Разрешенные расширения файлов
		Dir         string   `yaml:"dir"`          // Подкаталог для вложений внутри base_path
	} `yaml:"upload"`

	Notify struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		ToEmail      string `yaml:"to_email"` // Ящик поддержки
	} `yaml:"notify"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию из config.yaml либо,
// если задан DATABASE_URL, из переменных окружения (режим теста/деплоя).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

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

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Storage.BasePath = "./data"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

// applyDefaults подставляет значения по умолчанию для незаполненных полей
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./data"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
	}
	if len(cfg.Upload.AllowedExts) == 0 {
		cfg.Upload.AllowedExts = []string{"jpg", "jpeg", "png", "pdf"}
	}
	if cfg.Upload.Dir == "" {
		cfg.Upload.Dir = "static/uploads"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
