package config

import (
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds server configuration. Values come from environment variables;
// main loads .env first so local runs work without exporting anything.
type Config struct {
	Addr     string `env:"ADDR" env-default:":10000"`
	MongoURI string `env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGODB_DB" env-default:"misedb"`

	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" env-default:""`

	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret-change-me"`

	// AI credential is intentionally allowed to be empty here: the ai client
	// checks it at first use and fails closed with a descriptive error.
	AIAPIKey   string `env:"AI_API_KEY" env-default:""`
	AIEndpoint string `env:"AI_ENDPOINT" env-default:"https://api.openai.com/v1"`
	AIModel    string `env:"AI_MODEL" env-default:"gpt-4o-mini"`
	AITTSModel string `env:"AI_TTS_MODEL" env-default:"tts-1"`

	UploadDir string `env:"UPLOAD_DIR" env-default:"./static/uploads"`
}

var (
	cfg  Config
	once sync.Once
	err  error
)

// Load reads configuration from the environment. Safe to call more than once.
func Load() (*Config, error) {
	once.Do(func() {
		err = cleanenv.ReadEnv(&cfg)
	})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
