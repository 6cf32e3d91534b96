// Package config provides configuration parsing for routematch.
//
// The configuration is stored in routematch.json, or in routematch.yaml,
// routematch.yml or routematch.toml; the extension selects the format.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "trailingSlash": true,
//	  "maxDepth": 32,
//	  "cacheSize": 256,
//	  "collapseSlashes": false,
//	  "routes": [
//	    {"name": "home", "pattern": "/"},
//	    {"name": "user", "pattern": "/user/{id}(/posts/{post})"}
//	  ],
//	  "server": {"addr": "localhost:8080"},
//	  "metrics": {"enabled": true, "namespace": "routematch"},
//	  "tracing": {"enabled": false}
//	}
//
// The same file in YAML:
//
//	routes:
//	  - name: home
//	    pattern: /
//	  - name: user
//	    pattern: /user/{id}(/posts/{post})
//	metrics:
//	  enabled: true
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
