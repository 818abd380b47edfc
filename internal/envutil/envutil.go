package envutil

import (
	"fmt"
	"os"
)

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvOrNil(key string) *string {
	if value, ok := os.LookupEnv(key); ok {
		return &value
	}
	return nil
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func RequireEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	panic(fmt.Sprintf("missing required environment variable: %v", key))
}

func RequireEnvParsed[T any](key string, parse func(string) (T, error)) T {
	value, err := parse(RequireEnv(key))
	if err != nil {
		panic(fmt.Sprintf("invalid environment variable %v: %v", key, err))
	}
	return value
}

func GetEnvParsedOrNil[T any](key string, parse func(string) (T, error)) *T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	value, err := parse(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid environment variable %v: %v", key, err))
	}
	return &value
}

func GetEnvParsedOrDefault[T any](key string, parse func(string) (T, error), defaultValue T) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := parse(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid environment variable %v: %v", key, err))
	}
	return value
}
