package config

type Storage struct {
	Database Database `envPrefix:"DATABASE_"`
}

type Database struct {
	Path string `env:"PATH,expand" envDefault:"posest.sqlite3"`
}
