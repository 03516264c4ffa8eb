// Package navhistory provides History implementations for navmux.
//
// Memory keeps the entry stack in process and is used by tests and by
// hosts without a browser. Back, Forward and Go move through the stack and
// notify subscribers the way a popstate event would:
//
//	h, err := navhistory.NewMemory("https://example.com/")
//	r := navmux.New(navmux.WithHistory(h))
//	...
//	h.Back() // r re-dispatches the previous entry
//
// Browser, available in js/wasm builds, wraps window.history and the
// popstate event.
package navhistory
