//go:build js

package game

import (
	"fmt"
	"syscall/js"
)

// mediaCompact evaluates the page's max-width media query.
func mediaCompact(breakpoint int) (bool, bool) {
	mm := js.Global().Get("matchMedia")
	if mm.Type() != js.TypeFunction {
		return false, false
	}
	q := js.Global().Call("matchMedia", fmt.Sprintf("(max-width: %dpx)", breakpoint))
	return q.Get("matches").Bool(), true
}
