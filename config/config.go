package config

import (
	"fmt"

	"github.com/caarlos0/env/v8"
)

const AppName = "invitation_backend"

var Config struct {
	Mode  string `env:"MODE" envDefault:"dev"`
	Debug bool   `env:"DEBUG" envDefault:"false"`
	DbUrl string `env:"DB_URL"`

	ApiPrefix   string   `env:"API_V1_PREFIX" envDefault:"/api/v1"`
	CorsOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:8080,http://127.0.0.1:8080"`

	// directory holding the single-page front end; when missing, the
	// offer pages respond 404
	FrontendDir string `env:"FRONTEND_DIR" envDefault:"frontend"`

	RedisUrl string `env:"REDIS_URL"`

	MaxRequestsPerIPPerHour int `env:"MAX_REQUESTS_PER_IP_PER_HOUR" envDefault:"10"`

	// global claim throughput guard, requests per second plus burst
	ClaimRateLimit int `env:"CLAIM_RATE_LIMIT" envDefault:"40"`
	ClaimRateBurst int `env:"CLAIM_RATE_BURST" envDefault:"60"`
}

func InitConfig() {
	var err error
	if err = env.Parse(&Config); err != nil {
		panic(err)
	}
	fmt.Printf("%+v\n", &Config)

	initCache()
}
