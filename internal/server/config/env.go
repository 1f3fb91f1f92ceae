package config

import (
	"os"
	"strconv"
)

// parseEnv overlays selected Config fields from environment variables.
//
// Recognized variables:
//
//	ADDRESS            HTTP bind address
//	DATABASE_DSN       PostgreSQL DSN
//	DB_MAX_OPEN_CONNS  connection pool cap (integer)
//	S3_BUCKET_NAME     bucket name
//	AWS_REGION         bucket region
//	S3_BASE_ENDPOINT   S3-compatible endpoint override
//	S3_ACCESS_KEY      static access key
//	S3_SECRET_KEY      static secret key
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("DB_MAX_OPEN_CONNS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.DBMaxOpenConns = n
		}
	}
	if v, ok := os.LookupEnv("S3_BUCKET_NAME"); ok {
		config.S3Bucket = v
	}
	if v, ok := os.LookupEnv("AWS_REGION"); ok {
		config.S3Region = v
	}
	if v, ok := os.LookupEnv("S3_BASE_ENDPOINT"); ok {
		config.S3BaseEndpoint = v
	}
	if v, ok := os.LookupEnv("S3_ACCESS_KEY"); ok {
		config.S3AccessKey = v
	}
	if v, ok := os.LookupEnv("S3_SECRET_KEY"); ok {
		config.S3SecretKey = v
	}
}
