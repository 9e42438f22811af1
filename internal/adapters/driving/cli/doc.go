// Package cli implements the cearch command line interface. It is a
// driving adapter: commands parse flags, wire the driven adapters and
// call the core services.
package cli
