// Package config loads the sciebo command's settings.
//
// Values are resolved in increasing precedence from:
//  1. defaults declared on [Config]
//  2. a config file (yaml, json or toml) given with --config
//  3. environment variables prefixed with SCIEBO_, e.g. SCIEBO_USER_AGENT
//  4. command line flags
//  5. the positional <share-url> and <destination> arguments
package config
