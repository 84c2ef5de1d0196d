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

	// Points earned from order surplus expire this many months after the
	// earn date. 0 disables expiry.
	PointExpiryMonths int

	// Transfer fee as a percentage of the enrollment's applied price.
	TransferFeePercent int

	// Overpayment bonus: one BonusAmount credit per full BonusUnit of
	// surplus when the order enables bonus.
	BonusUnit   int64
	BonusAmount int64
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

		PointExpiryMonths:  getEnvInt("POINT_EXPIRY_MONTHS", 12),
		TransferFeePercent: getEnvInt("TRANSFER_FEE_PERCENT", 10),

		BonusUnit:   int64(getEnvInt("BONUS_UNIT", 1000000)),
		BonusAmount: int64(getEnvInt("BONUS_AMOUNT", 100000)),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
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
