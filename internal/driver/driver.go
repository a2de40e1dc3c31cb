package driver

// Driver is the interface a web server backend implements for tenant routes.
// Every method that takes a domain expects it already normalized.
type Driver interface {
	// Name returns the driver name (nginx)
	Name() string

	// Paths returns the driver's config paths
	Paths() Paths

	// Write stores the config for domain in the available directory,
	// overwriting any previous content, and returns the file path
	Write(domain, content string) (string, error)

	// Enable links the available config into the enabled directory,
	// replacing any existing link
	Enable(domain string) error

	// Disable removes the enabled link, leaving the config in place
	Disable(domain string) error

	// IsEnabled checks if a route is linked into the enabled directory
	IsEnabled(domain string) (bool, error)

	// WriteProxyMap replaces the host-to-port map file at path
	WriteProxyMap(path, content string) error

	// List returns the paths of all config files in the available directory
	List() ([]string, error)

	// Test validates the web server config syntax
	Test() error

	// Reload reloads the web server
	Reload() error

	// IsActive reports whether the web server service is running
	IsActive() (bool, error)
}

// Paths contains the web server config directory paths
type Paths struct {
	Available string // config available directory
	Enabled   string // config enabled directory
}

// ConfigExt is the file extension of every managed config file.
const ConfigExt = ".conf"
