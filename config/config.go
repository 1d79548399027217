/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads connection settings for the docstore backends.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/docstore/errors"
)

// Backend names understood by the registry.
const (
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds configuration for a docstore connection.
type Config struct {
	// Backend selects the datastore implementation.
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// LogLevel is a zap level name ("debug", "info", ...).
	// Default: "info"
	LogLevel string `yaml:"logLevel"`

	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	Redis    RedisConfig    `yaml:"redis"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// DynamoDBConfig configures the DynamoDB backend.
type DynamoDBConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Table     string `yaml:"table"`
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string `yaml:"endpoint"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	// Addr is host:port.
	// Default: "localhost:6379"
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// MaxIdle is the idle connection limit of the pool.
	// Default: 8
	MaxIdle int `yaml:"maxIdle"`
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file, or ":memory:".
	// Default: "docstore.db"
	Path string `yaml:"path"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendSQLite,
		LogLevel: "info",
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			MaxIdle: 8,
		},
		SQLite: SQLiteConfig{
			Path: "docstore.db",
		},
	}
}

// Load builds a Config from defaults, the optional YAML file at path, a .env
// file in the working directory if present, and finally the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// A missing .env file is not an error
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString(&c.Backend, "DOCSTORE_BACKEND")
	setString(&c.LogLevel, "DOCSTORE_LOG_LEVEL")
	setString(&c.DynamoDB.Region, "AWS_REGION")
	setString(&c.DynamoDB.AccessKey, "AWS_ACCESS_KEY")
	setString(&c.DynamoDB.SecretKey, "AWS_SECRET_KEY")
	setString(&c.DynamoDB.Table, "AWS_DDB_TABLE")
	setString(&c.DynamoDB.Endpoint, "DDB_ENDPOINT")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.SQLite.Path, "SQLITE_PATH")

	if v, ok := os.LookupEnv("REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidationError("REDIS_DB", "must be an integer")
		}
		c.Redis.DB = db
	}
	return nil
}

// Validate normalises empty values to their defaults and checks that the
// selected backend has what it needs.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = def.Redis.Addr
	}
	if c.Redis.MaxIdle < 1 {
		c.Redis.MaxIdle = def.Redis.MaxIdle
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = def.SQLite.Path
	}

	switch c.Backend {
	case BackendDynamoDB:
		if c.DynamoDB.Table == "" {
			return errors.NewValidationError("dynamodb.table", "required for the dynamodb backend")
		}
		if c.DynamoDB.Region == "" {
			return errors.NewValidationError("dynamodb.region", "required for the dynamodb backend")
		}
	case BackendRedis, BackendSQLite, BackendMemory:
	default:
		return errors.NewValidationError("backend", fmt.Sprintf("unknown backend %q", c.Backend))
	}
	return nil
}
