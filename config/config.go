package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	BIND_ADDRESS = "0.0.0.0:8080"
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	DEBUG_MODE   = true
	CORS_ORIGINS = "*"

	MYSQL_DSN          = "" // MySQL will be used if this is set
	SQLITE_FILE        = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	DB_MAX_CONNECTIONS = 10

	SESSION_KEY = "change me in production"

	// Initial admin user, created at startup if missing
	ADMIN_EMAIL    = ""
	ADMIN_PASSWORD = ""

	// Asset store
	STORAGE_TYPE    = "disk" // "disk", "ftp" or "s3"
	UPLOAD_DIR      = "gallery"
	PUBLIC_BASE_URL = "/media"
	DISK_PATH       = "/var/lib/gallery/media"
	FTP_ADDR        = "" // host:port
	FTP_USER        = ""
	FTP_PASSWORD    = ""
	FTP_ROOT        = "" // remote directory that PUBLIC_BASE_URL maps to, e.g. "/web/images"
	FTP_TIMEOUT     = 10 // seconds, per dial
	S3_BUCKET       = ""
	S3_REGION       = "us-east-1"
	S3_ENDPOINT     = ""
	S3_KEY          = ""
	S3_SECRET       = ""
	S3_PREFIX       = ""

	// Image normalization
	MAX_IMAGE_DIMENSION = 2000
	JPEG_QUALITY        = 85
)

func init() {
	_ = godotenv.Load() // optional local .env, real env vars win

	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvInt("DB_MAX_CONNECTIONS", &DB_MAX_CONNECTIONS)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("ADMIN_EMAIL", &ADMIN_EMAIL)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
	readEnvString("STORAGE_TYPE", &STORAGE_TYPE)
	readEnvString("UPLOAD_DIR", &UPLOAD_DIR)
	readEnvString("PUBLIC_BASE_URL", &PUBLIC_BASE_URL)
	readEnvString("DISK_PATH", &DISK_PATH)
	readEnvString("FTP_ADDR", &FTP_ADDR)
	readEnvString("FTP_USER", &FTP_USER)
	readEnvString("FTP_PASSWORD", &FTP_PASSWORD)
	readEnvString("FTP_ROOT", &FTP_ROOT)
	readEnvInt("FTP_TIMEOUT", &FTP_TIMEOUT)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvInt("MAX_IMAGE_DIMENSION", &MAX_IMAGE_DIMENSION)
	readEnvInt("JPEG_QUALITY", &JPEG_QUALITY)
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
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
