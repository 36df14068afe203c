package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. It is constructed once at
// startup and passed explicitly into the components that need it; nothing in
// the application reads configuration through globals after Load returns.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	TokenSecret     string // secret used to sign bearer tokens
	TokenTTLSeconds int    // token validity in seconds
	BcryptCost      int    // bcrypt cost for password hashing
	RedisAddr       string // host:port of the Redis cache (optional)
	RedisPassword   string // Redis password (optional)
	RedisDB         int    // Redis database number
	RabbitURL       string // AMQP broker URL for audit events (optional)
	CacheTTLSeconds int    // TTL for cached GET responses
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. Optional collaborators
// (Redis, RabbitMQ) default to empty and the service degrades gracefully
// without them.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		TokenSecret:     must("TOKEN_SECRET"),
		TokenTTLSeconds: getenvInt("TOKEN_TTL_SECONDS", 600),
		BcryptCost:      getenvInt("BCRYPT_COST", 10),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getenvInt("REDIS_DB", 0),
		RabbitURL:       os.Getenv("RABBITMQ_URL"),
		CacheTTLSeconds: getenvInt("CACHE_TTL_SECONDS", 60),
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

// getenv returns the variable's value or def when unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv but converts the value to an integer. Invalid
// integers are fatal.
func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
