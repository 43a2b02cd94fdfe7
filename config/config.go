package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS    = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS   = "0.0.0.0:8080"
	MYSQL_DSN      = "" // MySQL will be used if this is set (or MYSQL_DATABASE below)
	MYSQL_HOST     = "127.0.0.1:3306"
	MYSQL_USER     = "root"
	MYSQL_PASSWORD = ""
	MYSQL_DATABASE = ""                // DSN is assembled from the MYSQL_* parts if MYSQL_DSN is empty and this is set
	SQLITE_FILE    = "travel_world.db" // SQLite is used if MySQL is not configured
	DEBUG_MODE     = false
	// Sessions are stored server-side, the key only signs the cookie holding the session ID
	SESSION_KEY     = "travel_secret_key"
	SESSION_MAX_AGE = 30 * 86400 // seconds
	STATIC_DIR      = "static"   // Public static root, uploaded images are stored below it
	TEMPLATES_GLOB  = "templates/*.tmpl"
	ADMIN_EMAIL     = "admin@123"
	ADMIN_PASSWORD  = "password"
	LOG_LEVEL       = "info"
	LOG_FILE        = "" // e.g. "logs/travelworld.log", console only if empty
	MAX_UPLOAD_MB   = 10
	// Token bucket size per client IP for /login and /register
	AUTH_RATE_PER_MINUTE = 20
	CORS_ORIGINS         = "*"
	// S3 is used for uploaded media if S3_BUCKET is set
	S3_BUCKET     = ""
	S3_REGION     = "us-east-1"
	S3_ENDPOINT   = "" // for S3 compatible services
	S3_KEY        = ""
	S3_SECRET     = ""
	S3_PREFIX     = ""
	S3_PUBLIC_URL = "" // Public base URL of the bucket, e.g. "https://cdn.example.com"
)

func init() {
	// Missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("MYSQL_HOST", &MYSQL_HOST)
	readEnvString("MYSQL_USER", &MYSQL_USER)
	readEnvString("MYSQL_PASSWORD", &MYSQL_PASSWORD)
	readEnvString("MYSQL_DATABASE", &MYSQL_DATABASE)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("STATIC_DIR", &STATIC_DIR)
	readEnvString("TEMPLATES_GLOB", &TEMPLATES_GLOB)
	readEnvString("ADMIN_EMAIL", &ADMIN_EMAIL)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
	readEnvString("LOG_FILE", &LOG_FILE)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvInt("AUTH_RATE_PER_MINUTE", &AUTH_RATE_PER_MINUTE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_PUBLIC_URL", &S3_PUBLIC_URL)
}

// CorsOrigins splits CORS_ORIGINS on commas, dropping empty entries
func CorsOrigins() []string {
	result := []string{}
	for _, origin := range strings.Split(CORS_ORIGINS, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
