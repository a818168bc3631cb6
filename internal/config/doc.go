// Package config loads and validates the shoresh-server YAML configuration.
//
// Configuration supports ${VAR_NAME} environment expansion and human-readable
// duration strings. A minimal config:
//
//	server:
//	  http_addr: ":3000"
//	database:
//	  path: /var/lib/shoresh/shoresh.db
//	auth:
//	  password_hash_file: /etc/shoresh/password.hash
package config
