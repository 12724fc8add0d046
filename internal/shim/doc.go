// Package shim adapts a pitch detector to foreign callers such as the
// WebAssembly front end.
//
// A [Handle] owns one detector and serializes every call with a mutex, so a
// host may feed audio from one thread and poll results from another. Host
// samples arrive as float32 and are widened into a reused buffer.
package shim
