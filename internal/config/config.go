package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The struct is built once at startup and
// injected into every component that needs it; nothing reads the
// environment after Load returns.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign session tokens
	TokenTTLMin   int    // session token time-to-live in minutes
	BcryptCost    int    // bcrypt cost for password hashing
	ListPerPage   int    // page size for order history
	FactoryURL    string // base URL of the external fulfillment factory
	FactoryAPIKey string // api key presented to the factory
	AdminEmail    string // seeded admin account email (empty DB only)
	AdminPassword string // seeded admin account password
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
// Tunables fall back to the defaults the service has always run with.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		TokenTTLMin:   envInt("TOKEN_TTL_MIN", 24*60),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		ListPerPage:   envInt("LIST_PER_PAGE", 10),
		FactoryURL:    must("FACTORY_URL"),
		FactoryAPIKey: must("FACTORY_API_KEY"),
		AdminEmail:    envStr("ADMIN_EMAIL", "a@jwt.com"),
		AdminPassword: envStr("ADMIN_PASSWORD", "admin"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
