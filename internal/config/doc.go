// Package config loads and validates taskdeck configuration.
//
// Configuration is a YAML file with ${VAR_NAME} environment variable
// expansion applied to the raw content before parsing:
//
//	server:
//	  http_addr: "localhost:8080"
//	database:
//	  path: "~/.local/share/taskdeck/taskdeck.db"
//	auth:
//	  jwt_secret: "${TASKDECK_JWT_SECRET}"
//	  token_ttl: "720h"
//	comments:
//	  require_task_access: false
//	logging:
//	  level: "info"
//	  format: "text"
//
// server.http_addr, database.path, and auth.jwt_secret are required.
// token_ttl defaults to 30 days.
package config
