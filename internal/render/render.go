// Package render mounts, swaps and disposes terminal components inside a
// container without disturbing their siblings.
package render

import (
	"errors"
	"slices"
	"strings"
)

// Position selects where Mount inserts a component.
type Position int

const (
	BeforeEnd Position = iota
	AfterBegin
)

var (
	ErrNotMounted     = errors.New("render: component is not mounted")
	ErrAlreadyMounted = errors.New("render: component is already mounted")
	ErrDisposed       = errors.New("render: component was disposed")
)

// Component is anything that draws itself and embeds an Element.
type Component interface {
	View() string
	Root() *Element
}

// Element is the root handle every component embeds. It records where the
// component is mounted and the cleanup hooks Dispose runs.
type Element struct {
	parent    *Container
	onDestroy []func()
	disposed  bool
}

// Root returns the handle itself so embedding types satisfy Component.
func (e *Element) Root() *Element { return e }

// OnDestroy registers fn to run when the component is disposed.
func (e *Element) OnDestroy(fn func()) {
	e.onDestroy = append(e.onDestroy, fn)
}

// Mounted reports whether the component currently sits in a container.
func (e *Element) Mounted() bool { return e.parent != nil }

// Disposed reports whether Dispose has run.
func (e *Element) Disposed() bool { return e.disposed }

// Container is an ordered list of mounted components.
type Container struct {
	children []Component
}

func NewContainer() *Container { return &Container{} }

// Children returns the mounted components top to bottom.
func (c *Container) Children() []Component { return slices.Clone(c.children) }

// Len is the number of mounted components.
func (c *Container) Len() int { return len(c.children) }

// Index returns the slot of comp, or -1.
func (c *Container) Index(comp Component) int {
	return slices.IndexFunc(c.children, func(x Component) bool { return x.Root() == comp.Root() })
}

// View joins the children's views, one block per child.
func (c *Container) View() string {
	parts := make([]string, 0, len(c.children))
	for _, child := range c.children {
		parts = append(parts, child.View())
	}
	return strings.Join(parts, "\n")
}

// Mount inserts comp into container at pos.
func Mount(comp Component, container *Container, pos Position) error {
	el := comp.Root()
	if el.disposed {
		return ErrDisposed
	}
	if el.parent != nil {
		return ErrAlreadyMounted
	}
	switch pos {
	case AfterBegin:
		container.children = slices.Insert(container.children, 0, comp)
	default:
		container.children = append(container.children, comp)
	}
	el.parent = container
	return nil
}

// Replace puts next into the exact slot old occupies. old is detached but not
// disposed, so it can be mounted again later.
func Replace(next, old Component) error {
	oldEl, nextEl := old.Root(), next.Root()
	if oldEl.parent == nil {
		return ErrNotMounted
	}
	if nextEl.disposed {
		return ErrDisposed
	}
	if nextEl.parent != nil {
		return ErrAlreadyMounted
	}
	container := oldEl.parent
	i := container.Index(old)
	if i < 0 {
		return ErrNotMounted
	}
	container.children[i] = next
	nextEl.parent = container
	oldEl.parent = nil
	return nil
}

// Dispose detaches comp if mounted and runs its destroy hooks. It is safe on
// nil and on already-disposed components.
func Dispose(comp Component) {
	if comp == nil {
		return
	}
	el := comp.Root()
	if el == nil || el.disposed {
		return
	}
	if c := el.parent; c != nil {
		if i := c.Index(comp); i >= 0 {
			c.children = slices.Delete(c.children, i, i+1)
		}
		el.parent = nil
	}
	el.disposed = true
	hooks := el.onDestroy
	el.onDestroy = nil
	for _, fn := range hooks {
		fn()
	}
}
