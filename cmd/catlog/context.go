package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/abyssdigger/catlog"
)

type rootFlags struct {
	config      string
	app         string
	dataDir     string
	render      string
	interactive bool
}

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *catlog.Config
	configErr  error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the --config table once. No flag means no table.
func (c *commandContext) ensureConfig() (*catlog.Config, error) {
	c.configOnce.Do(func() {
		path := strings.TrimSpace(c.flags.config)
		if path == "" {
			return
		}
		c.config, c.configErr = catlog.LoadConfig(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) dataDir() string {
	if dir := strings.TrimSpace(c.flags.dataDir); dir != "" {
		return dir
	}
	return catlog.DefaultDataDir(c.flags.app)
}

// newLogger builds a logger writing info and warnings to the command's
// output and errors to its error stream.
func (c *commandContext) newLogger(cmd *cobra.Command) (*catlog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	mode, err := parseRender(c.flags.render)
	if err != nil {
		return nil, err
	}
	out, errout := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := catlog.InitWithParams(cfg, c.dataDir(), out, out, errout).SetRender(mode)
	if c.flags.interactive {
		logger.SetProbe(catlog.AlwaysInteractive)
	}
	return logger, nil
}

var renderNames = map[string]catlog.RenderMode{
	"auto":   catlog.RENDER_AUTO,
	"markup": catlog.RENDER_MARKUP,
	"ansi":   catlog.RENDER_ANSI,
	"plain":  catlog.RENDER_PLAIN,
}

func parseRender(name string) (catlog.RenderMode, error) {
	mode, ok := renderNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return catlog.RENDER_AUTO, fmt.Errorf("unknown render mode %q (want auto, markup, ansi or plain)", name)
	}
	return mode, nil
}

func parseSeverity(name string) (catlog.Severity, error) {
	sev, ok := catlog.ParseSeverity(name)
	if !ok {
		return sev, fmt.Errorf("unknown severity %q (want info, warning or error)", name)
	}
	return sev, nil
}
