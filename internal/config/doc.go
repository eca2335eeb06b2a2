// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides typed
// settings for the server, session storage, tokens, word analysis, speech
// and deck loading.
package config
