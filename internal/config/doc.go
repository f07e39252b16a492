// Package config defines the application configuration structure and its
// loading/validation logic. Configuration comes from a config.yaml file
// and QUIZ_-prefixed environment variables, with the environment winning.
package config
