// Package config holds the tenantrouter runtime configuration and the
// Route type shared by the inventory and the CLI.
//
// Configuration is read with viper from a YAML file and environment
// variables. Every key can be overridden with a TENANTROUTER_ prefixed
// variable; nested keys use underscores (commands.reload becomes
// TENANTROUTER_COMMANDS_RELOAD).
//
// Example config.yaml:
//
//	available_dir: /etc/nginx/sites-available
//	enabled_dir: /etc/nginx/sites-enabled
//	state_dir: /var/lib/tenantrouter
//	domain_suffix: cyzor.local
//	port_start: 6001
//	port_step: 2
//	port_end: 0
//	metrics_file: /var/lib/node_exporter/textfile/tenantrouter.prom
//	commands:
//	  validate: nginx -t
//	  reload: systemctl reload nginx
//	  is_active: systemctl is-active nginx
//	  list_sockets: ss -tln
//
// The file is looked up at the --config path, then /etc/tenantrouter,
// then ~/.config/tenantrouter. A missing file means defaults.
//
// # Thread Safety
//
// Config is read-only after Load and may be shared freely.
package config
