package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrUnknownRoute is returned when a navigation call names an
	// identifier absent from the route table.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrStackFloor is returned by Pop when only the initial route
	// remains. The stack is left intact; repeat calls are no-ops.
	ErrStackFloor = errors.New("navigation stack at floor")
)

// ScreenFactory produces a fresh screen instance. Factories take no
// arguments; dependencies are captured at registration time.
type ScreenFactory func() Screen

// Route binds one identifier to its factory.
type Route struct {
	ID      string
	Factory ScreenFactory
}

// RouteTable is the closed-world mapping from identifier to factory.
// It is built once at composition time and never mutated after.
type RouteTable struct {
	factories map[string]ScreenFactory
}

// NewRouteTable validates and freezes the routes. Duplicate identifiers
// and nil factories are programming errors and panic.
func NewRouteTable(routes []Route) *RouteTable {
	factories := make(map[string]ScreenFactory, len(routes))
	for _, r := range routes {
		if r.ID == "" {
			panic("route with empty identifier")
		}
		if r.Factory == nil {
			panic(fmt.Sprintf("route %q has no factory", r.ID))
		}
		if _, exists := factories[r.ID]; exists {
			panic(fmt.Sprintf("duplicate route %q", r.ID))
		}
		factories[r.ID] = r.Factory
	}
	return &RouteTable{factories: factories}
}

// Resolve returns the factory for id, or ErrUnknownRoute.
func (t *RouteTable) Resolve(id string) (ScreenFactory, error) {
	f, ok := t.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, id)
	}
	return f, nil
}

// Len reports how many routes are registered.
func (t *RouteTable) Len() int {
	return len(t.factories)
}

type stackEntry struct {
	route  string
	screen Screen
}

// Router owns the route table and the navigation stack. Screens hold it
// by reference and call Push/Pop; all calls run on the UI loop, one at
// a time.
type Router struct {
	table   *RouteTable
	stack   []stackEntry
	pending []tea.Cmd
}

// NewRouter mounts the initial route. An unknown initial route is a
// composition bug and returns the resolution error.
func NewRouter(table *RouteTable, initial string) (*Router, error) {
	r := &Router{table: table}
	if err := r.Push(initial); err != nil {
		return nil, err
	}
	return r, nil
}

// Push resolves id, constructs the screen, and gives it focus. The
// screen's Init command is queued for the host to collect.
func (r *Router) Push(id string) error {
	factory, err := r.table.Resolve(id)
	if err != nil {
		return err
	}
	screen := factory()
	r.stack = append(r.stack, stackEntry{route: id, screen: screen})
	if cmd := screen.Init(); cmd != nil {
		r.pending = append(r.pending, cmd)
	}
	return nil
}

// Pop removes the top screen and returns focus to the one beneath. At
// the floor it leaves the stack intact and returns ErrStackFloor.
func (r *Router) Pop() error {
	if len(r.stack) <= 1 {
		return ErrStackFloor
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if d, ok := top.screen.(Disposer); ok {
		d.Dispose()
	}
	return nil
}

// PopToFloor pops until only the initial route remains.
func (r *Router) PopToFloor() {
	for r.Pop() == nil {
	}
}

// Top is the visible screen. Never nil after construction.
func (r *Router) Top() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1].screen
}

// CurrentRoute is the identifier of the visible screen.
func (r *Router) CurrentRoute() string {
	if len(r.stack) == 0 {
		return ""
	}
	return r.stack[len(r.stack)-1].route
}

// Depth is the stack length; 1 means only the floor route.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Titles lists the stack's screen titles, floor first.
func (r *Router) Titles() []string {
	out := make([]string, len(r.stack))
	for i, e := range r.stack {
		out[i] = e.screen.Title()
	}
	return out
}

// AtFloor reports whether only the initial route remains.
func (r *Router) AtFloor() bool {
	return len(r.stack) <= 1
}

// takeInit drains queued Init commands from pushes since the last call.
func (r *Router) takeInit() tea.Cmd {
	if len(r.pending) == 0 {
		return nil
	}
	cmds := r.pending
	r.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
