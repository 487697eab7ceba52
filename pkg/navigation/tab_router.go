package navigation

import (
	"errors"
	"fmt"
	"slices"

	naverrors "github.com/go-drift/tabnav/pkg/errors"
)

// Errors returned (wrapped in a [naverrors.NavigationError]) by [TabRouter].
var (
	// ErrRouteNotFound reports a JumpTo for a route that is not in the state.
	ErrRouteNotFound = errors.New("route not found in state")
	// ErrUnknownInitialRoute reports an initial route name that is not configured.
	ErrUnknownInitialRoute = errors.New("initial route is not a configured route")
	// ErrNoRoutes reports a fresh navigator with no configured routes.
	ErrNoRoutes = errors.New("no routes configured")
	// ErrNilState reports a Reduce call without a state.
	ErrNilState = errors.New("nil state")
)

const tabKeyPrefix = "tab-"

// TabRouter computes navigation state for tab navigators.
//
// A TabRouter is a pair of pure functions: [TabRouter.Normalize] builds or
// repairs a state and [TabRouter.Reduce] applies an action to one. It holds
// no navigation state itself and is safe for concurrent use as long as its
// KeyGenerator is.
//
//	router := navigation.NewTabRouter()
//	state, err := router.Normalize(navigation.NormalizeParams{
//	    RouteNames: []string{"Home", "Settings"},
//	})
//	next, err := router.Reduce(state, navigation.Navigate("Settings"))
//	if next == nil {
//	    // not handled here; let a parent router try
//	}
type TabRouter struct {
	keys KeyGenerator
}

// TabRouterOption configures a TabRouter.
type TabRouterOption func(*TabRouter)

// WithKeyGenerator sets the generator used for route and navigator keys.
func WithKeyGenerator(keys KeyGenerator) TabRouterOption {
	return func(r *TabRouter) {
		if keys != nil {
			r.keys = keys
		}
	}
}

// NewTabRouter creates a TabRouter. Without options it uses [NewKeyGenerator].
func NewTabRouter(opts ...TabRouterOption) *TabRouter {
	r := &TabRouter{}
	for _, opt := range opts {
		opt(r)
	}
	if r.keys == nil {
		r.keys = NewKeyGenerator()
	}
	return r
}

// Actions returns the tab-specific action constructors.
func (r *TabRouter) Actions() TabActions {
	return TabActions{}
}

// NormalizeParams are the inputs of [TabRouter.Normalize].
type NormalizeParams struct {
	// RouteNames are the configured route names, in display order.
	RouteNames []string

	// CurrentState is a previously produced or persisted state.
	// Nil asks for a fresh state.
	CurrentState *State

	// InitialRouteName selects the focused route of a fresh state.
	// Defaults to RouteNames[0].
	InitialRouteName string
}

// Normalize returns a complete state for the configured routes.
//
// With no current state it builds one entry per route name, each with a
// freshly generated key, focused on the initial route. A partial current
// state gets the configured RouteNames and a new navigator key; its Index
// and Routes are kept as they are, even if they no longer match the
// configuration. A complete current state is returned as is.
//
// An initial route name that is not configured is an error, as is a fresh
// state with no routes at all.
func (r *TabRouter) Normalize(p NormalizeParams) (*State, error) {
	state := p.CurrentState

	if state == nil {
		initial := p.InitialRouteName
		if initial == "" {
			if len(p.RouteNames) == 0 {
				return nil, &naverrors.NavigationError{
					Op:   "navigation.TabRouter.Normalize",
					Kind: naverrors.KindConfig,
					Err:  ErrNoRoutes,
				}
			}
			initial = p.RouteNames[0]
		}

		index := slices.Index(p.RouteNames, initial)
		if index == -1 {
			return nil, &naverrors.NavigationError{
				Op:    "navigation.TabRouter.Normalize",
				Kind:  naverrors.KindConfig,
				Route: initial,
				Err:   fmt.Errorf("%w: %v", ErrUnknownInitialRoute, p.RouteNames),
			}
		}

		routes := make([]Route, len(p.RouteNames))
		for i, name := range p.RouteNames {
			routes[i] = Route{Name: name, Key: name + "-" + r.keys()}
		}
		state = &State{Index: index, Routes: routes}
	}

	if state.IsPartial() {
		next := state.Clone()
		if next.RouteNames == nil {
			next.RouteNames = slices.Clone(p.RouteNames)
			if next.RouteNames == nil {
				next.RouteNames = []string{}
			}
		}
		if next.Key == "" {
			next.Key = tabKeyPrefix + r.keys()
		}
		state = next
	}

	return state, nil
}

// Reduce applies action to state.
//
// The result is the next state when the action was handled, nil when it
// does not apply to this navigator (the caller should let another router
// try, or ignore it), or state itself for actions this router does not
// recognize. The only error is a JumpTo naming a route that is not in the
// state, which indicates a bug in the caller.
func (r *TabRouter) Reduce(state *State, action Action) (*State, error) {
	if state == nil {
		return nil, &naverrors.NavigationError{
			Op:   "navigation.TabRouter.Reduce",
			Kind: naverrors.KindConfig,
			Err:  ErrNilState,
		}
	}

	switch a := action.(type) {
	case JumpToAction:
		index := state.IndexOf(a.Name)
		if index == -1 {
			return nil, &naverrors.NavigationError{
				Op:         "navigation.TabRouter.Reduce",
				Kind:       naverrors.KindRoute,
				Route:      a.Name,
				Err:        ErrRouteNotFound,
				StackTrace: naverrors.CaptureStack(),
			}
		}
		return state.withIndex(index), nil

	case NavigateAction:
		if state.IndexOf(a.Name) == -1 {
			return nil, nil
		}
		return r.Reduce(state, r.Actions().JumpTo(a.Name))

	case ResetAction:
		if a.Key != "" && a.Key != state.Key {
			return nil, nil
		}
		next := a.State.Clone()
		next.Key = state.Key
		next.RouteNames = slices.Clone(state.RouteNames)
		return next, nil

	case GoBackAction:
		return nil, nil

	default:
		return state, nil
	}
}
