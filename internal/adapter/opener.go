package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrNoLink is returned when a product has nothing to open
var ErrNoLink = errors.New("no link to open")

// Opener opens product links in an external viewer
type Opener struct {
	command string   // configured viewer, empty for system default
	args    []string // extra arguments placed before the link
	goos    string
	logger  *slog.Logger

	// start launches the process without waiting for it
	start func(name string, args ...string) error
}

// NewOpener creates an Opener. An empty command uses the platform's default
// handler (open, xdg-open or start).
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		logger:  logger,
		start:   startDetached,
	}
}

// NewOpenerFromConfig creates an Opener from the ui section
func NewOpenerFromConfig(cfg *Config, logger *slog.Logger) *Opener {
	return NewOpener(cfg.UI.OpenCommand, cfg.UI.OpenArgs, logger)
}

func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Open launches the viewer for link. Only absolute http(s) links are opened.
func (o *Opener) Open(link string) error {
	if link == "" {
		return ErrNoLink
	}
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not a web link", link)
	}

	name, args := o.commandLine(link)
	o.logger.Info("opening link", "command", name, "args", args)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("open with %s: %w", name, err)
	}
	return nil
}

// commandLine returns the process and arguments used to open link
func (o *Opener) commandLine(link string) (string, []string) {
	if o.command != "" {
		args := append([]string{}, o.args...)
		return o.command, append(args, link)
	}

	switch o.goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		// The empty argument is start's window title
		return "cmd", []string{"/c", "start", "", link}
	default:
		return "xdg-open", []string{link}
	}
}
