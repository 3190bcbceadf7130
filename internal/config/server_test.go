package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validServerConfig() ServerConfig {
	return ServerConfig{
		Port:            ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT",
			"SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT"} {
			t.Setenv(key, "")
		}

		assert.Equal(t, validServerConfig(), LoadServerConfigFromEnv())
	})

	t.Run("slow uploads get a longer read timeout", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("SERVER_READ_TIMEOUT", "1m")
		t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")

		cfg := LoadServerConfigFromEnv()

		assert.Equal(t, "0.0.0.0:9090", cfg.GetAddress())
		assert.Equal(t, time.Minute, cfg.ReadTimeout)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})
}

func TestServerConfig_GetAddress(t *testing.T) {
	tests := []struct {
		host, port, want string
	}{
		{host: "", port: ":8080", want: ":8080"},
		{host: "localhost", port: ":8080", want: "localhost:8080"},
		{host: "127.0.0.1", port: "3000", want: "127.0.0.1:3000"},
		{host: "::1", port: ":8080", want: "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerConfig{Host: tt.host, Port: tt.port}.GetAddress())
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	assert.NoError(t, validServerConfig().Validate())

	mutations := map[string]func(*ServerConfig){
		"ReadTimeout":     func(c *ServerConfig) { c.ReadTimeout = 0 },
		"WriteTimeout":    func(c *ServerConfig) { c.WriteTimeout = -time.Second },
		"IdleTimeout":     func(c *ServerConfig) { c.IdleTimeout = 0 },
		"ShutdownTimeout": func(c *ServerConfig) { c.ShutdownTimeout = 0 },
	}
	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			cfg := validServerConfig()
			mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), field)
		})
	}
}
