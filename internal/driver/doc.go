// Package driver manages tenant route files for the web server and runs
// its control commands.
//
// The nginx driver follows the sites-available / sites-enabled convention:
// every route lives in the available directory as <domain>.conf, and only
// routes symlinked into the enabled directory are served. Disabling a
// route removes the symlink and leaves the file in place.
//
// # Basic Usage
//
//	drv := driver.NewNginx(cfg, executor.NewSystemExecutor())
//
//	path, err := drv.Write("acme.cyzor.local", content)
//	err = drv.Enable("acme.cyzor.local")
//	err = drv.Test()
//	err = drv.Reload()
//
// # Commands
//
// Test, Reload and IsActive run the command lines from config.Commands
// (nginx -t, systemctl reload nginx, systemctl is-active nginx by default).
// Test requires both a zero exit status and the word "successful" in the
// command output.
//
// # Testing
//
// NewNginxWithExecutor accepts an executor.MockExecutor so no real system
// command is run. MockDriver keeps an ordered log of the operations it
// receives, so orchestration tests can check that reload follows test:
//
//	mockExec := &executor.MockExecutor{}
//	drv := driver.NewNginxWithExecutor(availablePath, enabledPath, mockExec)
//
// # Error Handling
//
// Errors are *errors.RouteError values: IO and PERMISSION for file system
// failures, CONFIG_TEST for a rejected config, RELOAD for a failed reload.
package driver
