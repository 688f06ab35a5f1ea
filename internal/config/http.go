package config

type HTTP struct {
	Address            string   `env:"ADDRESS,expand" envDefault:":8080"`
	BasePath           string   `env:"BASE_PATH" envDefault:"/api"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}
