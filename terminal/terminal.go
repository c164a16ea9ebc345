// Package terminal wraps tcell screen lifecycle and provides crash-safe
// teardown for the frontend.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
)

// Init creates and initializes a tcell screen in the alternate buffer with
// the cursor hidden
func Init() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// Raw escape sequences for EmergencyReset; tcell cannot be trusted to
// clean up from inside a panic handler
var (
	csiCursorShow    = []byte("\x1b[?25h")
	csiAltScreenExit = []byte("\x1b[?1049l")
	csiSGR0          = []byte("\x1b[0m")
	csiAutoWrapOn    = []byte("\x1b[?7h")
)

// EmergencyReset restores the terminal to a sane state. Call from panic
// recovery when Fini cannot run normally; best-effort, errors ignored.
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
