package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/schubart/donald/internal/adapters/periph"
)

// Config holds application configuration
type Config struct {
	SensorType string // "mock" | "i2c"
	I2CBus     string // periph bus name, e.g. "1" for /dev/i2c-1
	SensorAddr uint16 // ADC address
	ServoAddr  uint16 // PCA9685 address
	RepoType   string // "memory" | "sqlite"
	DBPath     string // SQLite database file path (used when RepoType=sqlite)
	Port       string // status endpoint port
	TLSCert    string // path to this service's certificate
	TLSKey     string // path to this service's private key
	TLSCA      string // path to the CA certificate; enables mTLS
	LogLevel   zerolog.Level
}

// loadConfig reads configuration from environment variables
func loadConfig() (Config, error) {
	config := Config{
		SensorType: getenv("SENSOR_TYPE", "mock"),
		I2CBus:     getenv("I2C_BUS", "1"),
		RepoType:   getenv("REPO_TYPE", "memory"),
		DBPath:     getenv("DB_PATH", "./donald.db"),
		Port:       getenv("PORT", "50051"),
		TLSCert:    os.Getenv("TLS_CERT"),
		TLSKey:     os.Getenv("TLS_KEY"),
		TLSCA:      os.Getenv("TLS_CA"),
	}

	var err error
	if config.SensorAddr, err = parseAddr("SENSOR_ADDR", periph.DefaultSensorAddr); err != nil {
		return Config{}, err
	}
	if config.ServoAddr, err = parseAddr("SERVO_ADDR", 0x40); err != nil {
		return Config{}, err
	}

	config.LogLevel, err = zerolog.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch config.SensorType {
	case "mock", "i2c":
	default:
		return Config{}, fmt.Errorf("SENSOR_TYPE: unknown type %q", config.SensorType)
	}
	if config.TLSCert != "" && config.TLSKey == "" {
		return Config{}, fmt.Errorf("TLS_KEY is required with TLS_CERT")
	}

	return config, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseAddr reads a 7-bit I2C address; "0x" prefixes are accepted
func parseAddr(key string, fallback uint16) (uint16, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	addr, err := strconv.ParseUint(v, 0, 7)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid I2C address %q: %w", key, v, err)
	}
	return uint16(addr), nil
}
