package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding ties keys to a named action within a set of routes. The
// host interprets "quit" and "back"; everything else is handled by the
// screens themselves and listed here only so the footer can show it.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Routes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	r.bindings = append(r.bindings, binding)
}

// BindingsForRoute returns the bindings visible on the given route, in
// registration order.
func (r *KeyRegistry) BindingsForRoute(route string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if routeMatch(route, b.Routes) {
			out = append(out, b)
		}
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, route string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !routeMatch(route, b.Routes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func routeMatch(route string, routes []string) bool {
	if len(routes) == 0 {
		return true
	}
	for _, r := range routes {
		if r == "*" || r == route {
			return true
		}
	}
	return false
}

// DefaultKeyBindings covers the host actions plus the footer hints for
// the built-in screens.
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: "quit", Description: "quit", Routes: []string{"*"}},
		{Keys: []string{"q"}, Action: "quit", Description: "quit", Routes: []string{RouteSplash}},
		{Keys: []string{"esc"}, Action: "back", Description: "back", Routes: []string{"*"}},
		{Keys: []string{"enter"}, Action: "continue", Description: "continue", Routes: []string{
			RouteSplash, RouteOnboardingWelcome, RouteOnboardingFeatures,
			RouteOnboardingReady, RouteOnboardingTutorial, RouteOnboardingStartup,
		}},
		{Keys: []string{"tab"}, Action: "next-field", Description: "next field", Routes: []string{RouteLogin, RouteRegister}},
		{Keys: []string{"enter"}, Action: "submit", Description: "submit", Routes: []string{RouteLogin, RouteRegister}},
		{Keys: []string{"ctrl+r"}, Action: "register", Description: "create account", Routes: []string{RouteLogin}},
		{Keys: []string{"left", "right", "1", "2", "3"}, Action: "dashboard-tab", Description: "switch tab", Routes: []string{RouteHome}},
		{Keys: []string{"j", "k"}, Action: "move", Description: "move", Routes: []string{
			RouteHome, RouteHistory, RouteSettings, RouteNotifications,
		}},
		{Keys: []string{"enter"}, Action: "open", Description: "open", Routes: []string{RouteHome, RouteHistory}},
		{Keys: []string{"r"}, Action: "record", Description: "practice", Routes: []string{RouteHome}},
		{Keys: []string{"enter"}, Action: "start", Description: "start", Routes: []string{RouteRecording}},
		{Keys: []string{"space"}, Action: "stop", Description: "stop", Routes: []string{RouteRecording}},
		{Keys: []string{"space"}, Action: "play", Description: "play/pause", Routes: []string{RoutePlayback}},
		{Keys: []string{"a"}, Action: "analyze", Description: "analyze", Routes: []string{RoutePlayback}},
		{Keys: []string{"r"}, Action: "retake", Description: "retake", Routes: []string{RoutePlayback}},
		{Keys: []string{"f"}, Action: "fillers", Description: "filler words", Routes: []string{RouteFeedback}},
		{Keys: []string{"v"}, Action: "breakdown", Description: "breakdown", Routes: []string{RouteFeedback}},
		{Keys: []string{"enter"}, Action: "finish", Description: "finish", Routes: []string{RouteFeedback}},
		{Keys: []string{"s"}, Action: "sync", Description: "sync", Routes: []string{RouteHistory}},
		{Keys: []string{"/"}, Action: "search", Description: "search", Routes: []string{RouteHistory}},
		{Keys: []string{"enter"}, Action: "search", Description: "search/open", Routes: []string{RouteSearch}},
		{Keys: []string{"tab"}, Action: "focus", Description: "results", Routes: []string{RouteSearch}},
		{Keys: []string{"g"}, Action: "progress", Description: "progress", Routes: []string{RouteProfile}},
		{Keys: []string{"s"}, Action: "settings", Description: "settings", Routes: []string{RouteProfile}},
		{Keys: []string{"u"}, Action: "upgrade", Description: "upgrade", Routes: []string{RouteProfile}},
		{Keys: []string{"o"}, Action: "sign-out", Description: "sign out", Routes: []string{RouteProfile}},
		{Keys: []string{"enter"}, Action: "edit", Description: "edit", Routes: []string{RouteSettings}},
		{Keys: []string{"w"}, Action: "write", Description: "write", Routes: []string{RouteSettings}},
		{Keys: []string{"R"}, Action: "reset", Description: "erase data", Routes: []string{RouteSettings}},
		{Keys: []string{"left", "right"}, Action: "choose", Description: "choose plan", Routes: []string{RoutePayment}},
	}
}
