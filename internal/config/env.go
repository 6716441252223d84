package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	RedisURL string

	JWTSecret  string
	JWTTTL     time.Duration
	PendingTTL time.Duration

	LogFile  string
	LogLevel string

	CORSAllowedOrigins []string
	LoginRate          string
}

// LoadEnv reads an optional dotenv file and then the process environment.
// Variables already set in the environment win over the file.
func LoadEnv(files ...string) Env {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBUser:     getenv("DB_USER", "root"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBHost:     getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:     getenv("DB_NAME", "green_journey_db"),

		RedisURL: getenv("REDIS_URL", ""),

		JWTSecret:  getenv("JWT_SECRET", ""),
		JWTTTL:     getduration("JWT_TTL", 24*time.Hour),
		PendingTTL: getduration("PENDING_TTL", 30*time.Minute),

		LogFile:  getenv("LOG_FILE", ""),
		LogLevel: getenv("LOG_LEVEL", "info"),

		CORSAllowedOrigins: getlist("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
		LoginRate: getenv("LOGIN_RATE", "10-1m"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getduration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getlist(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
