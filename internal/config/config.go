// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server Server
	Remote Remote
	Local  Local
	Cache  Cache
	Backup Backup
}

type Server struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// Remote selects and configures the remote store. Driver is either
// "postgres" or "mongo"; the probe timeout bounds the startup health check
// so an unreachable remote cannot delay the local fallback.
type Remote struct {
	Driver              string
	ProbeTimeoutSeconds int
	Postgres            Postgres
	Mongo               Mongo
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Mongo struct {
	URI    string
	DBName string
}

// Local configures the JSON-file fallback store.
type Local struct {
	DataDir string
}

type Cache struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

// Backup configures the S3-compatible snapshot backup target.
type Backup struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("REMOTE_DRIVER", "postgres")
		viper.SetDefault("REMOTE_PROBE_TIMEOUT_SECONDS", 3)
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "books")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("MONGO_URI", "")
		viper.SetDefault("MONGO_DB_NAME", "books")
		viper.SetDefault("LOCAL_DATA_DIR", "./data/local")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
		viper.SetDefault("BACKUP_ENDPOINT", "")
		viper.SetDefault("BACKUP_ACCESS_KEY", "")
		viper.SetDefault("BACKUP_SECRET_KEY", "")
		viper.SetDefault("BACKUP_BUCKET", "")
		viper.SetDefault("BACKUP_USE_SSL", true)

		viper.AutomaticEnv()

		ensureDir(viper.GetString("LOCAL_DATA_DIR"))

		instance = &Config{
			Server: Server{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Remote: Remote{
				Driver:              viper.GetString("REMOTE_DRIVER"),
				ProbeTimeoutSeconds: viper.GetInt("REMOTE_PROBE_TIMEOUT_SECONDS"),
				Postgres: Postgres{
					Host:     viper.GetString("DB_HOST"),
					Port:     viper.GetString("DB_PORT"),
					User:     viper.GetString("DB_USER"),
					Password: viper.GetString("DB_PASSWORD"),
					DBName:   viper.GetString("DB_NAME"),
					SSLMode:  viper.GetString("DB_SSLMODE"),
				},
				Mongo: Mongo{
					URI:    viper.GetString("MONGO_URI"),
					DBName: viper.GetString("MONGO_DB_NAME"),
				},
			},
			Local: Local{
				DataDir: viper.GetString("LOCAL_DATA_DIR"),
			},
			Cache: Cache{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Backup: Backup{
				Endpoint:  viper.GetString("BACKUP_ENDPOINT"),
				AccessKey: viper.GetString("BACKUP_ACCESS_KEY"),
				SecretKey: viper.GetString("BACKUP_SECRET_KEY"),
				Bucket:    viper.GetString("BACKUP_BUCKET"),
				UseSSL:    viper.GetBool("BACKUP_USE_SSL"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
