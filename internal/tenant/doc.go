// Package tenant manages reverse-proxy routes for tenants on a single host.
//
// A Manager ties together the port allocator, the nginx driver and the
// embedded template. Setup runs the whole sequence for one tenant:
//
//	resolve port -> generate config -> nginx -t -> reload
//
// and stops at the first failing step. Nothing written before the failure
// is rolled back.
//
// # Inventory
//
// Routes are not stored anywhere except in the generated files. List
// re-derives them by scanning each *.conf file line by line:
//
//   - domain: the first server_name line, second token
//   - port: the first proxy_pass line pointing at http://localhost
//   - id: the first "# ID:" line, or the file name without .conf
//
// A field whose marker line is missing reads "unknown". When a state
// directory is configured, Generate also writes a YAML route record there,
// and List uses it to fill fields the text scan could not recover.
package tenant
