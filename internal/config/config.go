package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contiene la configuración estática del servicio.
type Config struct {
	Port  string `env:"PORT" envDefault:"8080"`
	DBDSN string `env:"DB_DSN"` // vacío => repos in-memory

	// Auth. Sin JWT_SECRET el servicio arranca en modo dev (X-Debug-User-ID).
	JWTSecret       string        `env:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Clinicians: "usuario:hash_bcrypt" separados por coma.
	Clinicians string `env:"CLINICIANS"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LOG_FILE"`
	AppName   string `env:"APP_NAME" envDefault:"nicu-progress"`

	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
}

var ErrInvalidClinicians = errors.New("CLINICIANS must be a comma separated list of user:bcrypt_hash")

// Load lee un .env opcional (ENV_FILE o ./.env) y luego parsea el entorno.
// Las variables ya definidas en el entorno tienen prioridad sobre el archivo.
func Load() (Config, error) {
	path := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

func (c Config) DevMode() bool {
	return strings.TrimSpace(c.JWTSecret) == ""
}

// ClinicianHashes parsea CLINICIANS a username => hash.
func (c Config) ClinicianHashes() (map[string]string, error) {
	out := map[string]string{}
	if strings.TrimSpace(c.Clinicians) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(c.Clinicians, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		// el hash bcrypt contiene '$' pero no ':'
		user, hash, ok := strings.Cut(pair, ":")
		user, hash = strings.TrimSpace(user), strings.TrimSpace(hash)
		if !ok || user == "" || hash == "" {
			return nil, ErrInvalidClinicians
		}
		out[user] = hash
	}
	return out, nil
}
