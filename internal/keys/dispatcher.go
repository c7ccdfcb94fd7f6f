// Package keys routes key presses to listeners registered for the whole
// screen, ahead of the focused item.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Listener handles a key press and reports whether it consumed it.
type Listener func(msg tea.KeyMsg) bool

// Dispatcher holds the active listeners in registration order.
type Dispatcher struct {
	next      int
	listeners []entry
}

type entry struct {
	id int
	fn Listener
}

func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// Listen registers fn and returns the function that removes it. Calling the
// returned function more than once is harmless.
func (d *Dispatcher) Listen(fn Listener) (cancel func()) {
	d.next++
	id := d.next
	d.listeners = append(d.listeners, entry{id: id, fn: fn})
	return func() { d.remove(id) }
}

// Dispatch offers msg to every listener until one consumes it. Listeners may
// cancel themselves while running.
func (d *Dispatcher) Dispatch(msg tea.KeyMsg) bool {
	snapshot := append([]entry(nil), d.listeners...)
	for _, e := range snapshot {
		if !d.active(e.id) {
			continue
		}
		if e.fn(msg) {
			return true
		}
	}
	return false
}

// Len is the number of registered listeners.
func (d *Dispatcher) Len() int { return len(d.listeners) }

func (d *Dispatcher) active(id int) bool {
	for _, e := range d.listeners {
		if e.id == id {
			return true
		}
	}
	return false
}

func (d *Dispatcher) remove(id int) {
	for i, e := range d.listeners {
		if e.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Escape is the binding that abandons an open editor.
var Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

// IsEscape reports whether msg is the escape key.
func IsEscape(msg tea.KeyMsg) bool {
	return key.Matches(msg, Escape)
}
