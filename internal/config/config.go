package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the restaurant service
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Sessions SessionsConfig `yaml:"sessions"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// PricingConfig holds the cart pricing rules
type PricingConfig struct {
	TaxRate             float64 `yaml:"tax_rate"`
	DeliveryFee         float64 `yaml:"delivery_fee"`
	PaymentDelaySeconds int     `yaml:"payment_delay_seconds"`
}

// SessionsConfig holds in-memory session lifecycle settings
type SessionsConfig struct {
	IdleTTLMinutes int `yaml:"idle_ttl_minutes"`
}

// PaymentDelay returns the simulated payment processing delay
func (p PricingConfig) PaymentDelay() time.Duration {
	return time.Duration(p.PaymentDelaySeconds) * time.Second
}

// IdleTTL returns the session idle timeout
func (s SessionsConfig) IdleTTL() time.Duration {
	return time.Duration(s.IdleTTLMinutes) * time.Minute
}

// Load reads configuration from a YAML file, then applies environment
// overrides for credentials (a .env file is honored when present).
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := defaults()
	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.applyEnvOverrides()

	return config, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: 3000},
		Pricing: PricingConfig{
			TaxRate:             0.10,
			DeliveryFee:         5.00,
			PaymentDelaySeconds: 2,
		},
		Sessions: SessionsConfig{IdleTTLMinutes: 30},
	}
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "server":
		return c.setServerValue(key, value)
	case "database":
		return c.setDatabaseValue(key, value)
	case "rabbitmq":
		return c.setRabbitMQValue(key, value)
	case "pricing":
		return c.setPricingValue(key, value)
	case "sessions":
		return c.setSessionsValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func (c *Config) setServerValue(key, value string) error {
	switch key {
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Server.Port = port
	default:
		return fmt.Errorf("unknown server key: %s", key)
	}
	return nil
}

func (c *Config) setDatabaseValue(key, value string) error {
	switch key {
	case "host":
		c.Database.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Database.Port = port
	case "user":
		c.Database.User = value
	case "password":
		c.Database.Password = value
	case "database":
		c.Database.Database = value
	default:
		return fmt.Errorf("unknown database key: %s", key)
	}
	return nil
}

func (c *Config) setRabbitMQValue(key, value string) error {
	switch key {
	case "host":
		c.RabbitMQ.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.RabbitMQ.Port = port
	case "user":
		c.RabbitMQ.User = value
	case "password":
		c.RabbitMQ.Password = value
	default:
		return fmt.Errorf("unknown rabbitmq key: %s", key)
	}
	return nil
}

func (c *Config) setPricingValue(key, value string) error {
	switch key {
	case "tax_rate":
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid tax_rate value: %w", err)
		}
		if rate < 0 {
			return fmt.Errorf("tax_rate must not be negative")
		}
		c.Pricing.TaxRate = rate
	case "delivery_fee":
		fee, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid delivery_fee value: %w", err)
		}
		if fee < 0 {
			return fmt.Errorf("delivery_fee must not be negative")
		}
		c.Pricing.DeliveryFee = fee
	case "payment_delay_seconds":
		delay, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid payment_delay_seconds value: %w", err)
		}
		c.Pricing.PaymentDelaySeconds = delay
	default:
		return fmt.Errorf("unknown pricing key: %s", key)
	}
	return nil
}

func (c *Config) setSessionsValue(key, value string) error {
	switch key {
	case "idle_ttl_minutes":
		ttl, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid idle_ttl_minutes value: %w", err)
		}
		c.Sessions.IdleTTLMinutes = ttl
	default:
		return fmt.Errorf("unknown sessions key: %s", key)
	}
	return nil
}

// applyEnvOverrides lets deployment credentials win over the checked-in file.
func (c *Config) applyEnvOverrides() {
	_ = godotenv.Load()

	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Database = v
	}
	if v := os.Getenv("RABBITMQ_USER"); v != "" {
		c.RabbitMQ.User = v
	}
	if v := os.Getenv("RABBITMQ_PASSWORD"); v != "" {
		c.RabbitMQ.Password = v
	}
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
