package main

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SENSOR_TYPE", "I2C_BUS", "SENSOR_ADDR", "SERVO_ADDR", "REPO_TYPE", "DB_PATH", "PORT", "TLS_CERT", "TLS_KEY", "TLS_CA", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	config, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	want := Config{
		SensorType: "mock",
		I2CBus:     "1",
		SensorAddr: 0x4b,
		ServoAddr:  0x40,
		RepoType:   "memory",
		DBPath:     "./donald.db",
		Port:       "50051",
		LogLevel:   zerolog.InfoLevel,
	}
	if config != want {
		t.Errorf("config = %+v, want %+v", config, want)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SENSOR_TYPE", "i2c")
	t.Setenv("I2C_BUS", "0")
	t.Setenv("SENSOR_ADDR", "0x48")
	t.Setenv("SERVO_ADDR", "65")
	t.Setenv("REPO_TYPE", "sqlite")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if config.SensorType != "i2c" || config.I2CBus != "0" {
		t.Errorf("hardware = %q on bus %q", config.SensorType, config.I2CBus)
	}
	if config.SensorAddr != 0x48 || config.ServoAddr != 0x41 {
		t.Errorf("addresses = 0x%02x, 0x%02x", config.SensorAddr, config.ServoAddr)
	}
	if config.RepoType != "sqlite" || config.LogLevel != zerolog.DebugLevel {
		t.Errorf("repo = %q, level = %v", config.RepoType, config.LogLevel)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SENSOR_TYPE", "gpio"},
		{"SENSOR_ADDR", "0x80"},
		{"SERVO_ADDR", "abc"},
		{"LOG_LEVEL", "loud"},
		{"TLS_CERT", "/etc/donald/cert.pem"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv("TLS_KEY", "")
			t.Setenv(tt.key, tt.value)
			if _, err := loadConfig(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
