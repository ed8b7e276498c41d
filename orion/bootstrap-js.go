//go:build js

package orion

// DefaultBootstrapper creates the context in the background, the browser
// thread must never block.
func DefaultBootstrapper(create CreateContext) Bootstrapper {
	return AsyncBootstrap{Create: create}
}
