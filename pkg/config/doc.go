// Package config loads the greeter configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then an
// optional dotenv file, then GREETER_* environment variables such as
// GREETER_SERVER_PORT or GREETER_LOGGING_LEVEL.
package config
