package orion

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/lmage/glimpse"
)

type RunOptions struct {
	// CreateContext runs the GPU bootstrap. This is the only field that is required.
	CreateContext CreateContext

	// Bootstrapper defaults to DefaultBootstrapper for the current platform.
	Bootstrapper Bootstrapper

	WindowWidth  int
	WindowHeight int
	WindowTitle  string
}

// Run opens the window and drives the event loop until the application exits.
// It returns the error that terminated the application.
func Run(loop glimpse.EventLoop[ContextReady], opts RunOptions) error {
	if opts.CreateContext == nil && opts.Bootstrapper == nil {
		return errors.New("CreateContext must not be nil")
	}

	if opts.Bootstrapper == nil {
		opts.Bootstrapper = DefaultBootstrapper(opts.CreateContext)
	}

	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1000
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 600
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "lmage"
	}

	// windows are destroyed last, after the surfaces bound to them
	defer loop.Terminate()

	app := NewApp(
		AppOptions{
			WindowTitle:  opts.WindowTitle,
			WindowWidth:  opts.WindowWidth,
			WindowHeight: opts.WindowHeight,
		},
		opts.Bootstrapper,
		loop.Proxy().Send,
	)

	defer app.Close()

	if err := loop.Run(app); err != nil {
		return fmt.Errorf("run event loop: %w", err)
	}

	return app.Err()
}
