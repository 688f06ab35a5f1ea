package config

import "time"

type Auth struct {
	AdminUsername string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	TokenExpiry   time.Duration `env:"TOKEN_EXPIRY" envDefault:"168h"`
}
