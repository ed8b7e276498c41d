//go:build !js

package orion

// DefaultBootstrapper blocks the event loop thread while the context is
// created, which lets the first frame render before the window is shown.
func DefaultBootstrapper(create CreateContext) Bootstrapper {
	return BlockingBootstrap{Create: create}
}
