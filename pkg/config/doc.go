// Package config loads typed configuration structs from environment variables
// using github.com/caarlos0/env, with optional dotenv files read through
// github.com/joho/godotenv. Parsed values are cached per struct type.
package config
