// Package driving defines the interfaces through which callers drive the
// core: the public surface exposed to the host application and CLI.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
package driving
