package rf

import "sync/atomic"

// current holds the process-wide context pointer some call sites prefer
// over threading a *Context explicitly — the package-level draw helpers in
// shapes.go use it.
var current atomic.Pointer[Context]

// SetGlobalContext installs ctx as the context package-level draw helpers
// operate on. NewContext calls this automatically; multi-context programs
// that want the package-level helpers to target a specific Context call it
// again after switching.
func SetGlobalContext(ctx *Context) { current.Store(ctx) }

// CurrentContext returns the context installed by the most recent
// SetGlobalContext call, or nil if none has been installed yet.
func CurrentContext() *Context { return current.Load() }
