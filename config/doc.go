// Package config loads the castanet configuration from a YAML file.
//
// The configuration is built once by Initialize and is read-only afterwards.
// Every top-level key may be overridden by the environment variable
// CASTANET_<KEY>, for example CASTANET_RUN_MODE=predict.
package config
