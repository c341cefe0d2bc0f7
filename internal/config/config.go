// Package config collects the environment knobs for both binaries.
// A .env file is honored in development; real env vars win.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Server struct {
	Addr        string
	IdleTimeout time.Duration
}

type Client struct {
	ServerURL  string
	PlayerName string
}

func LoadServer() Server {
	_ = godotenv.Load()
	return Server{
		Addr:        getEnv("ADDR", ":8080"),
		IdleTimeout: getDuration("IDLE_TIMEOUT", 5*time.Minute),
	}
}

func LoadClient() Client {
	_ = godotenv.Load()
	return Client{
		ServerURL:  getEnv("SERVER_URL", "ws://127.0.0.1:8080/ws"),
		PlayerName: os.Getenv("PLAYER_NAME"),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
