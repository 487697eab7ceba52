package navigation

import (
	"errors"
	"fmt"
	"slices"
)

// Route is one entry of a tab navigator's route list.
//
// Key is generated once when the entry is created and never changes for the
// lifetime of the entry. It is distinct from Name: two entries may share a
// name, never a key.
type Route struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
}

// State is the complete navigation state of a tab navigator.
//
// A State whose RouteNames is nil or whose Key is empty is partial: it holds
// what a host persisted, and [TabRouter.Normalize] fills the missing fields.
// States are values. Router operations never modify a State they receive;
// every transition yields a fresh State.
type State struct {
	// Index is the position of the focused route in Routes.
	Index int `json:"index" yaml:"index"`
	// Routes lists one entry per configured route name, in order.
	Routes []Route `json:"routes" yaml:"routes"`
	// RouteNames echoes the configured route names.
	RouteNames []string `json:"routeNames,omitempty" yaml:"routeNames,omitempty"`
	// Key identifies the navigator instance that owns this state.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Clone returns a deep copy of s. Clone of a nil State is nil.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	return &State{
		Index:      s.Index,
		Routes:     slices.Clone(s.Routes),
		RouteNames: slices.Clone(s.RouteNames),
		Key:        s.Key,
	}
}

// IsPartial reports whether s lacks the fields owned by the normalizer.
func (s *State) IsPartial() bool {
	return s.RouteNames == nil || s.Key == ""
}

// IndexOf returns the position of the first route named name, or -1.
func (s *State) IndexOf(name string) int {
	return slices.IndexFunc(s.Routes, func(r Route) bool {
		return r.Name == name
	})
}

// Focused returns the route at Index.
// The second result is false when Index is out of range.
func (s *State) Focused() (Route, bool) {
	if s.Index < 0 || s.Index >= len(s.Routes) {
		return Route{}, false
	}
	return s.Routes[s.Index], true
}

// withIndex returns a copy of s focused on index.
func (s *State) withIndex(index int) *State {
	next := s.Clone()
	next.Index = index
	return next
}

// Validation failures reported by [State.Validate].
var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrRouteNameMismatch = errors.New("routes do not match routeNames")
	ErrDuplicateRouteKey = errors.New("duplicate route key")
	ErrMissingKey        = errors.New("missing key")
)

// Validate checks that s is a complete, well-formed state: Index addresses a
// route, route names follow RouteNames in order and count, and every key is
// present and unique.
func (s *State) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("state: %w", ErrMissingKey)
	}
	if len(s.Routes) > 0 && (s.Index < 0 || s.Index >= len(s.Routes)) {
		return fmt.Errorf("state: %w: %d not in [0, %d)", ErrIndexOutOfRange, s.Index, len(s.Routes))
	}
	if len(s.Routes) != len(s.RouteNames) {
		return fmt.Errorf("state: %w: %d routes, %d names", ErrRouteNameMismatch, len(s.Routes), len(s.RouteNames))
	}
	seen := make(map[string]struct{}, len(s.Routes))
	for i, r := range s.Routes {
		if r.Name != s.RouteNames[i] {
			return fmt.Errorf("state: %w: routes[%d] is %q, want %q", ErrRouteNameMismatch, i, r.Name, s.RouteNames[i])
		}
		if r.Key == "" {
			return fmt.Errorf("state: routes[%d]: %w", i, ErrMissingKey)
		}
		if _, dup := seen[r.Key]; dup {
			return fmt.Errorf("state: %w: %q", ErrDuplicateRouteKey, r.Key)
		}
		seen[r.Key] = struct{}{}
	}
	return nil
}
