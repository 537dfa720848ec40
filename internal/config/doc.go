// Package config provides configuration parsing for formkit hosts.
//
// The configuration is stored in formkit.json in the working directory.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "signup-demo",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics",
//	    "namespace": "formkit"
//	  },
//	  "tracing": {
//	    "enabled": false,
//	    "tracerName": "formkit"
//	  },
//	  "archive": {
//	    "bucket": "submissions",
//	    "prefix": "forms/",
//	    "region": "eu-west-1"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
