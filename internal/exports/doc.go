// Package exports holds the table of functions the bridge exposes to its
// embedding host.
//
// The table is explicit: every export is registered by name with its
// parameter kinds when the bridge is built, and the host calls it by name.
// Nothing depends on a particular embedding mechanism; a wasm shim, a cgo
// wrapper or the logbridge CLI all go through [Table.Call].
package exports
