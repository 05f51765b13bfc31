package configs

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBDriver    string
	DBSource    string
	Port        string
	JWTSecret   string
	JWTTTL      time.Duration
	LogLevel    string
	CORSOrigins []string

	Broker    string // none | amqp | nats
	BrokerURL string

	Currency             string
	ServiceChargePercent decimal.Decimal
	LoyaltySpendPerPoint decimal.Decimal
	LoyaltyPointValue    decimal.Decimal

	AdminEmail    string
	AdminPassword string
}

// LoadConfig reads the dotenv files (default .env) when present, then the
// process environment. Variables already set in the environment win.
func LoadConfig(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: ignoring .env: %v", err)
	}

	return &Config{
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource:    getEnv("DB_SOURCE", "pos.db"),
		Port:        getEnv("PORT", "8000"),
		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		Broker:    strings.ToLower(getEnv("BROKER", "none")),
		BrokerURL: getEnv("BROKER_URL", ""),

		Currency:             getEnv("CURRENCY", "INR"),
		ServiceChargePercent: getEnvDecimal("SERVICE_CHARGE_PERCENT", decimal.Zero),
		LoyaltySpendPerPoint: getEnvDecimal("LOYALTY_SPEND_PER_POINT", decimal.NewFromInt(10)),
		LoyaltyPointValue:    getEnvDecimal("LOYALTY_POINT_VALUE", decimal.RequireFromString("0.10")),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(getEnv(key, ""))
	if err != nil || d.IsNegative() {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
