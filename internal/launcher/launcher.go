// Package launcher opens outbound links (booking sites, trailer pages) in
// the user's browser.
package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsafeURL is returned for anything other than an absolute http(s) URL
var ErrUnsafeURL = errors.New("refusing to open non-http url")

// Launcher opens URLs with a configured command or the system default
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments before the URL
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// New creates a Launcher. An empty command uses open/xdg-open/start.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   startDetached,
		logger:  logger,
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// Open launches rawURL without waiting for the browser to exit
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsafeURL, rawURL)
	}

	name, args := l.commandFor(rawURL)
	l.logger.Info("opening url", "command", name, "url", rawURL)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}
	return nil
}

func (l *Launcher) commandFor(rawURL string) (string, []string) {
	if l.command != "" {
		args := append([]string{}, l.args...)
		return l.command, append(args, rawURL)
	}

	switch l.goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "cmd", []string{"/c", "start", "", rawURL}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{rawURL}
	}
}
