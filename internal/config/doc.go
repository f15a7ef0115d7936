// Package config provides configuration parsing for hyperdom.
//
// The configuration is stored in hyperdom.json (or hyperdom.yaml) next to
// the scripts it renders. This package handles loading, saving, and
// validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "script": "main.js",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "metricsPath": "/metrics",
//	    "tracerName": "hyperdom"
//	  },
//	  "publish": {
//	    "bucket": "snapshots",
//	    "prefix": "site/",
//	    "region": "eu-west-1",
//	    "gzip": true
//	  },
//	  "metrics": { "namespace": "hyperdom" },
//	  "log": { "level": "info", "format": "text" }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.URL())
package config
