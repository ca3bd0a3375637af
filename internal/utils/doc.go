// Package utils holds the process-level plumbing shared by mailshift commands:
// layered configuration through Viper, zap logger construction, and the values
// carried on a command's context.
package utils
