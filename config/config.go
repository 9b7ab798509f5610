package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Badge/certificate eligibility gate: minimum completion percentage an
	// instructor can certify below full completion.
	EligibilityThreshold int

	// When true, an admin approval also publishes the course. Default policy
	// keeps publication a separate instructor action.
	AutoPublishOnApprove bool

	EmailSender string
	Password    string // SMTP Password
	SMTPHost    string
	SMTPPort    string
	AdminEmails string // comma separated, receives the moderation digest

	CertRenderURL string // external certificate render service, optional
	CertRenderKey string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EligibilityThreshold: getEnvInt("ELIGIBILITY_THRESHOLD", 80),
		AutoPublishOnApprove: getEnvBool("AUTO_PUBLISH_ON_APPROVE", false),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("EMAIL_PASSWORD", ""),
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    getEnv("SMTP_PORT", "587"),
		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		CertRenderURL: getEnv("CERT_RENDER_URL", ""),
		CertRenderKey: getEnv("CERT_RENDER_KEY", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EligibilityThreshold < 0 || AppConfig.EligibilityThreshold > 100 {
		log.Printf("Warning: ELIGIBILITY_THRESHOLD %d out of range, falling back to 80.", AppConfig.EligibilityThreshold)
		AppConfig.EligibilityThreshold = 80
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a boolean or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
