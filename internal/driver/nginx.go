package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	securejoin "github.com/cyphar/filepath-securejoin"
	"golang.org/x/sys/unix"

	"github.com/ksyq12/tenantrouter/internal/config"
	"github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/executor"
	"github.com/ksyq12/tenantrouter/internal/logger"
)

// successToken is what nginx -t prints when the configuration is accepted.
const successToken = "successful"

// NginxDriver implements the Driver interface for Nginx
type NginxDriver struct {
	paths    Paths
	commands config.Commands
	exec     executor.CommandExecutor
}

// NewNginx creates a new Nginx driver from the tool configuration
func NewNginx(cfg *config.Config, exec executor.CommandExecutor) *NginxDriver {
	return &NginxDriver{
		paths: Paths{
			Available: cfg.AvailableDir,
			Enabled:   cfg.EnabledDir,
		},
		commands: cfg.Commands,
		exec:     exec,
	}
}

// NewNginxWithExecutor creates a new Nginx driver with custom paths and executor (for testing)
func NewNginxWithExecutor(available, enabled string, exec executor.CommandExecutor) *NginxDriver {
	return &NginxDriver{
		paths: Paths{
			Available: available,
			Enabled:   enabled,
		},
		commands: config.New().Commands,
		exec:     exec,
	}
}

// Name returns the driver name
func (n *NginxDriver) Name() string {
	return "nginx"
}

// Paths returns the config paths
func (n *NginxDriver) Paths() Paths {
	return n.paths
}

// fileName returns "<domain>.conf", rejecting anything that is not a plain
// file name.
func fileName(domain string) (string, error) {
	if domain == "" || domain == "." || domain == ".." ||
		strings.ContainsAny(domain, `/\`) || strings.ContainsRune(domain, 0) {
		return "", errors.Validation(fmt.Sprintf("invalid domain for file name: %q", domain))
	}
	return domain + ConfigExt, nil
}

// availablePath resolves the config path for domain inside the available directory.
func (n *NginxDriver) availablePath(domain string) (string, error) {
	name, err := fileName(domain)
	if err != nil {
		return "", err
	}
	path, err := securejoin.SecureJoin(n.paths.Available, name)
	if err != nil {
		return "", errors.WrapDomain(errors.ErrCodeIO, domain, "failed to resolve config path", err)
	}
	return path, nil
}

// enabledPath is not resolved through securejoin: the entry is a symlink
// and must be addressed itself, not its target.
func (n *NginxDriver) enabledPath(domain string) (string, error) {
	name, err := fileName(domain)
	if err != nil {
		return "", err
	}
	return filepath.Join(n.paths.Enabled, name), nil
}

// ensureWritable creates dir if needed and checks write access to it.
func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		if os.IsPermission(err) {
			return errors.Wrap(errors.ErrCodePermission, fmt.Sprintf("cannot create %s", dir), err)
		}
		return errors.Wrap(errors.ErrCodeIO, fmt.Sprintf("failed to create %s", dir), err)
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return errors.Wrap(errors.ErrCodePermission, fmt.Sprintf("%s is not writable", dir), err)
	}
	return nil
}

// Write stores the config in the available directory
func (n *NginxDriver) Write(domain, content string) (string, error) {
	if err := ensureWritable(n.paths.Available); err != nil {
		return "", err
	}

	path, err := n.availablePath(domain)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.WrapDomain(errors.ErrCodeIO, domain, "failed to write config file", err)
	}

	logger.Debug("wrote %s (%d bytes)", path, len(content))
	return path, nil
}

// WriteProxyMap writes the map file, creating its directory if needed.
func (n *NginxDriver) WriteProxyMap(path, content string) error {
	if err := ensureWritable(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, fmt.Sprintf("failed to write %s", path), err)
	}
	logger.Debug("wrote proxy map %s (%d bytes)", path, len(content))
	return nil
}

// Enable links the config into the enabled directory, replacing any
// existing entry
func (n *NginxDriver) Enable(domain string) error {
	source, err := n.availablePath(domain)
	if err != nil {
		return err
	}
	target, err := n.enabledPath(domain)
	if err != nil {
		return err
	}

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return errors.NotFound(domain)
	}

	if err := ensureWritable(n.paths.Enabled); err != nil {
		return err
	}

	if _, err := os.Lstat(target); err == nil {
		if err := os.Remove(target); err != nil {
			return errors.WrapDomain(errors.ErrCodeIO, domain, "failed to remove existing link", err)
		}
		logger.Debug("removed existing link %s", target)
	}

	if err := os.Symlink(source, target); err != nil {
		return errors.WrapDomain(errors.ErrCodeIO, domain, "failed to create symlink", err)
	}

	return nil
}

// Disable deactivates a route by removing the symlink
func (n *NginxDriver) Disable(domain string) error {
	target, err := n.enabledPath(domain)
	if err != nil {
		return err
	}

	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return errors.WrapDomain(errors.ErrCodeNotFound, domain, "route is not enabled", nil)
	}
	if err != nil {
		return errors.WrapDomain(errors.ErrCodeIO, domain, "failed to check route status", err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return errors.WrapDomain(errors.ErrCodeIO, domain, "enabled entry is not a symlink, refusing to remove", nil)
	}

	if err := os.Remove(target); err != nil {
		return errors.WrapDomain(errors.ErrCodeIO, domain, "failed to remove symlink", err)
	}

	return nil
}

// IsEnabled checks if a route is enabled
func (n *NginxDriver) IsEnabled(domain string) (bool, error) {
	target, err := n.enabledPath(domain)
	if err != nil {
		return false, err
	}
	_, err = os.Lstat(target)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.WrapDomain(errors.ErrCodeIO, domain, "failed to check route status", err)
	}
	return true, nil
}

// List returns all *.conf files in the available directory, sorted by name
func (n *NginxDriver) List() ([]string, error) {
	if _, err := os.Stat(n.paths.Available); os.IsNotExist(err) {
		return []string{}, nil
	}

	names, err := doublestar.Glob(os.DirFS(n.paths.Available), "*"+ConfigExt, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, "failed to read "+n.paths.Available, err)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(n.paths.Available, name))
	}
	return paths, nil
}

// Test validates the nginx config syntax. Both a zero exit status and the
// success token in the output are required.
func (n *NginxDriver) Test() error {
	res, err := executor.RunLine(n.exec, n.commands.Validate)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigTest, "nginx config test could not run", err)
	}

	output := strings.TrimSpace(res.Combined())
	if !res.Success() || !strings.Contains(output, successToken) {
		return errors.Wrap(errors.ErrCodeConfigTest, "nginx config test failed",
			fmt.Errorf("exit status %d: %s", res.ExitCode, output))
	}
	return nil
}

// Reload reloads nginx to apply changes
func (n *NginxDriver) Reload() error {
	res, err := executor.RunLine(n.exec, n.commands.Reload)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReload, "failed to reload nginx", err)
	}
	if !res.Success() {
		return errors.Wrap(errors.ErrCodeReload, "failed to reload nginx",
			fmt.Errorf("exit status %d: %s", res.ExitCode, strings.TrimSpace(res.Combined())))
	}
	return nil
}

// IsActive reports whether the nginx service is active
func (n *NginxDriver) IsActive() (bool, error) {
	res, err := executor.RunLine(n.exec, n.commands.IsActive)
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}
