package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Printer   PrinterConfig
	Store     StoreProfile
	Tax       TaxConfig
	Advisory  AdvisoryConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type StorageConfig struct {
	// ReceiptPath is the directory where exported receipt PDFs are written.
	ReceiptPath string
}

type PrinterConfig struct {
	Type    string // "usb", "network", or "none"
	USBPath string
	Address string
	// Width is the print width in characters (32 for 58mm paper).
	Width int
}

// StoreProfile holds the static store identity printed on receipt
// headers. It is loaded once at startup and read-only afterwards.
type StoreProfile struct {
	Name       string
	Descriptor string
	Address    string
	Phone      string
	TaxID      string
}

type TaxConfig struct {
	// Rate is the flat tax rate as a fraction, e.g. 0.05 for 5%.
	Rate float64
}

type AdvisoryConfig struct {
	APIKey   string
	Model    string
	Endpoint string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "medipos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "medipos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Dhaka")
	viper.SetDefault("STORAGE_RECEIPT_PATH", "./receipts")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("STORE_NAME", "HEALTH PLUS PHARMACY")
	viper.SetDefault("STORE_DESCRIPTOR", "Medical Store")
	viper.SetDefault("STORE_ADDRESS", "670, East Jatrabari, Dhaka")
	viper.SetDefault("STORE_PHONE", "+88-01915824432")
	viper.SetDefault("STORE_TAX_ID", "----------------")
	viper.SetDefault("TAX_RATE", 0.05)
	viper.SetDefault("ADVISORY_API_KEY", "")
	viper.SetDefault("ADVISORY_MODEL", "gemini-2.5-flash")
	viper.SetDefault("ADVISORY_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Storage: StorageConfig{
			ReceiptPath: viper.GetString("STORAGE_RECEIPT_PATH"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Store: StoreProfile{
			Name:       viper.GetString("STORE_NAME"),
			Descriptor: viper.GetString("STORE_DESCRIPTOR"),
			Address:    viper.GetString("STORE_ADDRESS"),
			Phone:      viper.GetString("STORE_PHONE"),
			TaxID:      viper.GetString("STORE_TAX_ID"),
		},
		Tax: TaxConfig{
			Rate: viper.GetFloat64("TAX_RATE"),
		},
		Advisory: AdvisoryConfig{
			APIKey:   viper.GetString("ADVISORY_API_KEY"),
			Model:    viper.GetString("ADVISORY_MODEL"),
			Endpoint: viper.GetString("ADVISORY_ENDPOINT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
