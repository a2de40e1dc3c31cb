// Package template renders nginx virtual-host files for tenant routes from
// templates embedded in the binary.
//
// Every route uses the same template (nginx/tenant.tmpl). It produces a
// header comment block followed by a plain HTTP server:
//
//	# Tenant: acme.cyzor.local
//	# ID: acme
//	# Port: 6003
//	# Created: 2026-10-19T10:30:45Z
//
//	server {
//	    listen 80;
//	    server_name acme.cyzor.local;
//	    location / { proxy_pass http://localhost:6003; ... }
//	    location /health { proxy_pass http://localhost:6003/; access_log off; }
//	}
//
// The header lines, the server_name directive and the first proxy_pass line
// are what the inventory scanner reads back, so their shape must not change.
//
// nginx/proxy_map.tmpl renders the optional host-to-port map: a
// "map $http_host $backend_pool" block over every enabled route plus a
// default_server that proxies unmatched tenant hosts through it.
package template
