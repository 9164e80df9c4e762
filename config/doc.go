// Package config loads logger tree settings from YAML and builds the root
// logger they describe.
//
// A minimal file:
//
//	name: recursor
//	verbosity: 2
//	outputs:
//	  - backend: console
//	    format: json
//	    target: stderr
//	  - backend: file
//	    file:
//	      path: /var/log/recursor.log
//	      max_size: 10485760
//	      max_backups: 5
//
// Load applies Default for missing settings and validates the result; Build
// wires the outputs into handlers and returns the root together with a
// function that closes them.
package config
