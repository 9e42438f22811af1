// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - IndexStore: Document and inverted-index persistence. The engine holds
//     no in-process index; everything is store-backed.
//   - Transliterator: Maps words to their diacritic-free comparable form
//     used for approximate matching.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
