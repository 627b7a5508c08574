//go:build js

package lockdown

import (
	"syscall/js"

	"neuralfolio/logging"
)

// Guard holds the installed document listeners.
type Guard struct {
	doc         js.Value
	contextMenu js.Func
	keyDown     js.Func
}

// Install registers document listeners that cancel the context menu and
// blocked chords.
func Install(log *logging.Logger) *Guard {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		log.Warn("no document, input lockdown disabled")
		return &Guard{}
	}

	g := &Guard{doc: doc}
	g.contextMenu = js.FuncOf(func(this js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		return nil
	})
	g.keyDown = js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		c := Chord{
			Key:   ev.Get("key").String(),
			Ctrl:  ev.Get("ctrlKey").Bool(),
			Shift: ev.Get("shiftKey").Bool(),
		}
		if Blocked(c) {
			ev.Call("preventDefault")
		}
		return nil
	})

	doc.Call("addEventListener", "contextmenu", g.contextMenu)
	doc.Call("addEventListener", "keydown", g.keyDown)
	log.Debug("input lockdown installed")
	return g
}

// Release removes the listeners.
func (g *Guard) Release() {
	if g.doc.IsUndefined() || g.doc.IsNull() {
		return
	}
	g.doc.Call("removeEventListener", "contextmenu", g.contextMenu)
	g.doc.Call("removeEventListener", "keydown", g.keyDown)
	g.contextMenu.Release()
	g.keyDown.Release()
}
