// Package config provides configuration management for kubedash.
//
// Configuration is loaded from YAML files and merged in order, later layers
// overriding earlier ones:
//
//  1. Defaults compiled into the binary
//  2. User configuration (~/.config/kubedash/config.yaml)
//  3. Project configuration (./.kubedash/config.yaml)
//  4. The file named by --config, if any
//
// Zero values never override. Boolean switches are pointers so a layer can
// turn a default off.
//
// # Example
//
//	ui:
//	  tickInterval: 200ms
//	  split: horizontal
//	  followLogs: true
//	kube:
//	  context: kind-dev
//	  namespaces: [default]
//	  pollInterval: 1s
//	logging:
//	  level: debug
//	  file: /tmp/kubedash.log
//	theme:
//	  borderActive: "#7571F9"
//	layouts:
//	  pods:
//	    direction: vertical
//	    children:
//	      - weight: 30
//	        slot: 0
//	      - weight: 70
//	        slot: 1
package config
