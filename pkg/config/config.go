package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string `env:"PORT"                      envDefault:"8080"`
	Env                     string `env:"ENV"                       envDefault:"development"`
	PostgresConnStr         string `env:"POSTGRES_CONN_STR,required,notEmpty"`
	MongoURI                string `env:"MONGO_URI"`
	MongoDatabase           string `env:"MONGO_DATABASE"            envDefault:"blogs"`
	SiteURL                 string `env:"SITE_URL"                  envDefault:"http://127.0.0.1:8080"`
	DefaultFromEmail        string `env:"DEFAULT_FROM_EMAIL"        envDefault:"from@example.com"`
	AuthProvider            string `env:"AUTH_PROVIDER"             envDefault:"jwt"`
	JWTSecret               string `env:"JWT_SECRET"                envDefault:"supersecretjwtkey"`
	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH" envDefault:"./firebase_credentials.json"`
}

// Load reads .env (when present) into the environment and parses it into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
