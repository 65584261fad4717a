// Package app loads the storefront configuration and wires the logger,
// message catalog, authentication backend and session observer used by the
// command line tools.
package app
