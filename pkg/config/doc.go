// Package config loads typed configuration structs from environment
// variables.
//
// Each package in the service declares its own Config struct with `env`
// tags and loads it through Load or MustLoad. A .env file in the working
// directory is read once, before the first parse, so local development
// does not require exporting variables by hand.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":3000"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config
