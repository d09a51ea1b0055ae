package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	JWTSecret string
	JWTExpiry time.Duration

	OTPTTL time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Admins         string
	Lawyers        string
	Clients        string
	Appointments   string
	Cases          string
	Questions      string
	Answers        string
	Comments       string
	CommentReplies string
	Messages       string
	Reports        string
	Interactions   string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Admins:         getEnv("DYNAMO_TABLE_ADMINS", "admins"),
			Lawyers:        getEnv("DYNAMO_TABLE_LAWYERS", "lawyers"),
			Clients:        getEnv("DYNAMO_TABLE_CLIENTS", "clients"),
			Appointments:   getEnv("DYNAMO_TABLE_APPOINTMENTS", "appointments"),
			Cases:          getEnv("DYNAMO_TABLE_CASES", "cases"),
			Questions:      getEnv("DYNAMO_TABLE_QUESTIONS", "questions"),
			Answers:        getEnv("DYNAMO_TABLE_ANSWERS", "answers"),
			Comments:       getEnv("DYNAMO_TABLE_COMMENTS", "lawyer_comments"),
			CommentReplies: getEnv("DYNAMO_TABLE_COMMENT_REPLIES", "lawyer_comment_replies"),
			Messages:       getEnv("DYNAMO_TABLE_MESSAGES", "messages"),
			Reports:        getEnv("DYNAMO_TABLE_REPORTS", "reports"),
			Interactions:   getEnv("DYNAMO_TABLE_INTERACTIONS", "lawyer_interactions"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "lawlink-uploads"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_MINUTES", 60)) * time.Minute,

		OTPTTL: time.Duration(getEnvInt("OTP_TTL_MINUTES", 5)) * time.Minute,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@lawlink.example"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
