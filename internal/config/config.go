package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"nonprofit_cms/internal/domain/models"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	JWT         JWTConfig         `yaml:"jwt"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
	Cache       CacheConfig       `yaml:"cache"`
	Content     ContentConfig     `yaml:"content"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type JWTConfig struct {
	Secret string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env:"UPLOAD_DIR" env-default:"./uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"10485760"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

// CacheConfig selects the document cache. Driver is "redis", "memory" or "none".
type CacheConfig struct {
	Driver string        `yaml:"driver" env:"CACHE_DRIVER" env-default:"memory"`
	TTL    time.Duration `yaml:"ttl" env-default:"5m"`
}

type ContentConfig struct {
	// UploadBaseURL is prefixed to stored /uploads/ paths when they are displayed.
	UploadBaseURL string      `yaml:"upload_base_url" env:"UPLOAD_BASE_URL"`
	Pages         []PageEntry `yaml:"pages"`
}

type PageEntry struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// Catalog builds the page catalog. With no pages configured the public site's
// default catalog is used.
func (c ContentConfig) Catalog() (*models.Catalog, error) {
	if len(c.Pages) == 0 {
		return models.DefaultCatalog(), nil
	}

	entries := make([]models.CatalogEntry, 0, len(c.Pages))
	for _, p := range c.Pages {
		kind, err := models.ParsePageKind(p.Kind)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", p.Name, err)
		}
		entries = append(entries, models.CatalogEntry{Name: p.Name, Kind: kind})
	}

	return models.NewCatalog(entries)
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	if err := models.ValidateUploadBaseURL(cfg.Content.UploadBaseURL); err != nil {
		panic("bad content.upload_base_url: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	// .env is optional, values already present in the environment win
	_ = godotenv.Load()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
