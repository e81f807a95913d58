// Package registry is the central glue between declarative service
// definitions and compiled Go handlers.
//
// A Registry instance maps handler names (e.g. "OnLogWeight") to registered
// Go functions, and service ids (e.g. "log_weight") to the pairing of a
// loaded ServiceSpec with its bound handler. It is constructed explicitly and
// torn down with its owner, never a process-wide singleton, so tests build
// isolated instances freely.
//
// Reads vastly outnumber writes: every dispatched call performs a lookup,
// while registration happens at startup and unregistration rarely. A
// readers-writer lock keeps the read path cheap, and nothing in this package
// holds the lock while a handler executes.
package registry
