// Package config loads configuration from a YAML file, a .env file and
// prefixed environment variables using Viper and godotenv.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("procout", &cfg)
//
// Environment variables override file values when they carry the upper-cased
// service name as prefix, with underscores separating nested keys
// (e.g. PROCOUT_PROCESS_DRAIN_TIMEOUT=5s).
package config
