package navigation

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"

	naverrors "github.com/go-drift/tabnav/pkg/errors"
)

// Dispatcher receives actions. [TabController] implements it, and a
// controller forwards the actions its router leaves unhandled to its parent
// Dispatcher.
type Dispatcher interface {
	Dispatch(action Action) (bool, error)
}

// TabControllerConfig configures a [TabController].
type TabControllerConfig struct {
	// RouteNames are the configured tabs. At least one is required unless
	// InitialState is supplied.
	RouteNames []string

	// InitialRouteName is the tab focused by a fresh state.
	// Defaults to RouteNames[0].
	InitialRouteName string

	// InitialState restores a persisted state, complete or partial.
	InitialState *State

	// Parent receives actions this controller does not handle.
	Parent Dispatcher

	// Logger receives debug records for each dispatch. Nil discards them.
	Logger *slog.Logger
}

// TabController owns the navigation state of one tab navigator and feeds
// actions through a [TabRouter].
//
// Dispatch is serialized: concurrent callers observe the actions applied one
// at a time in lock acquisition order. Listeners run after the lock is
// released.
type TabController struct {
	router *TabRouter
	parent Dispatcher
	logger *slog.Logger

	mu               sync.Mutex
	routeNames       []string
	initialRouteName string
	state            *State
	listeners        map[int]func(*State)
	nextListenerID   int
}

// NewTabController creates a controller and normalizes its initial state.
// A nil router gets [NewTabRouter] defaults.
//
// An InitialState whose tabs differ from RouteNames is reconciled the same
// way [TabController.SetRouteNames] does it.
func NewTabController(router *TabRouter, cfg TabControllerConfig) (*TabController, error) {
	if router == nil {
		router = NewTabRouter()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	state, err := router.Normalize(NormalizeParams{
		RouteNames:       cfg.RouteNames,
		CurrentState:     cfg.InitialState,
		InitialRouteName: cfg.InitialRouteName,
	})
	if err != nil {
		return nil, err
	}

	c := &TabController{
		router:           router,
		parent:           cfg.Parent,
		logger:           logger,
		routeNames:       slices.Clone(cfg.RouteNames),
		initialRouteName: cfg.InitialRouteName,
		state:            state,
		listeners:        make(map[int]func(*State)),
	}
	if c.stale(state) {
		if c.state, err = c.reconcile(state, c.routeNames); err != nil {
			return nil, err
		}
		logger.Debug("restored state reconciled", "key", c.state.Key, "routes", c.routeNames)
	}
	return c, nil
}

// State returns a copy of the current state.
func (c *TabController) State() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Index returns the focused tab index.
func (c *TabController) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Index
}

// Key returns the navigator key of the current state.
func (c *TabController) Key() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Key
}

// Dispatch applies action to the current state.
//
// It reports whether the action was handled, either here or by the parent.
// A router error (a JumpTo to a missing route) is reported to the global
// error handler and returned; the state is left unchanged.
func (c *TabController) Dispatch(action Action) (bool, error) {
	if action == nil {
		return false, nil
	}

	c.mu.Lock()
	prev := c.state
	next, err := c.router.Reduce(prev, action)
	if err != nil {
		c.mu.Unlock()
		var navErr *naverrors.NavigationError
		if errors.As(err, &navErr) {
			naverrors.Report(navErr)
		}
		return false, err
	}
	if next == nil {
		c.mu.Unlock()
		c.logger.Debug("action not handled", "type", action.ActionType(), "key", prev.Key)
		if c.parent != nil {
			return c.parent.Dispatch(action)
		}
		return false, nil
	}
	c.state = next
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if next == prev {
		c.logger.Debug("action passed through", "type", action.ActionType(), "key", prev.Key)
		return true, nil
	}

	c.logger.Debug("action handled", "type", action.ActionType(), "key", next.Key, "index", next.Index)
	c.notify(listeners, next)
	return true, nil
}

// SetIndex focuses the tab at index. Out-of-range indexes are ignored.
func (c *TabController) SetIndex(index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.state.Routes) || index == c.state.Index {
		c.mu.Unlock()
		return
	}
	next := c.state.withIndex(index)
	c.state = next
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Debug("index set", "key", next.Key, "index", next.Index)
	c.notify(listeners, next)
}

// SetRouteNames reconfigures the tabs.
//
// Entries whose names are still configured keep their keys, new names get
// fresh entries, and removed names are dropped. The focused tab stays
// focused if it survives; otherwise the initial route (or the first tab)
// is focused.
func (c *TabController) SetRouteNames(names []string) error {
	c.mu.Lock()
	next, err := c.reconcile(c.state, names)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	changed := !slices.Equal(c.state.RouteNames, next.RouteNames) || c.state.Index != next.Index
	c.routeNames = slices.Clone(names)
	c.state = next
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if changed {
		c.notify(listeners, next)
	}
	return nil
}

// stale reports whether s was built for a different set of tabs than the
// configured ones. Without configured names any state is accepted.
func (c *TabController) stale(s *State) bool {
	if len(c.routeNames) == 0 {
		return false
	}
	if !slices.Equal(s.RouteNames, c.routeNames) || len(s.Routes) != len(c.routeNames) {
		return true
	}
	for i, r := range s.Routes {
		if r.Name != c.routeNames[i] {
			return true
		}
	}
	return false
}

// reconcile rebuilds base for names, keeping the keys of surviving routes.
func (c *TabController) reconcile(base *State, names []string) (*State, error) {
	byName := make(map[string]Route, len(base.Routes))
	for _, r := range base.Routes {
		if _, ok := byName[r.Name]; !ok {
			byName[r.Name] = r
		}
	}

	focused, _ := base.Focused()
	routes := make([]Route, 0, len(names))
	var fresh []string
	for _, name := range names {
		if r, ok := byName[name]; ok {
			routes = append(routes, r)
			continue
		}
		routes = append(routes, Route{Name: name})
		fresh = append(fresh, name)
	}

	if len(fresh) > 0 {
		// Let the router mint keys for the new entries the same way it does
		// for a fresh navigator.
		minted, err := c.router.Normalize(NormalizeParams{RouteNames: fresh})
		if err != nil {
			return nil, err
		}
		j := 0
		for i := range routes {
			if routes[i].Key == "" {
				routes[i].Key = minted.Routes[j].Key
				j++
			}
		}
	}

	index := slices.IndexFunc(routes, func(r Route) bool { return r.Key == focused.Key && focused.Key != "" })
	if index == -1 {
		index = slices.Index(names, c.initialRouteName)
	}
	if index == -1 {
		index = 0
	}

	partial := &State{Index: index, Routes: routes, Key: base.Key}
	return c.router.Normalize(NormalizeParams{
		RouteNames:   names,
		CurrentState: partial,
	})
}

// AddListener registers fn to run after every state change.
// It returns a function that removes the listener.
func (c *TabController) AddListener(fn func(*State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *TabController) snapshotListeners() []func(*State) {
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(*State), len(ids))
	for i, id := range ids {
		fns[i] = c.listeners[id]
	}
	return fns
}

func (c *TabController) notify(listeners []func(*State), state *State) {
	for _, fn := range listeners {
		func() {
			defer naverrors.Recover("navigation.TabController.notify")
			fn(state.Clone())
		}()
	}
}

// Snapshot writes the current state to w in the given format.
func (c *TabController) Snapshot(w io.Writer, format Format) error {
	return EncodeSnapshot(w, c.State(), format)
}

// Restore replaces the current state with a snapshot read from r.
//
// A partial snapshot is completed from the configured route names. A
// snapshot saved for different tabs is reconciled against them, so routes
// that are still configured keep their keys.
func (c *TabController) Restore(r io.Reader, format Format) error {
	restored, err := DecodeSnapshot(r, format)
	if err != nil {
		return err
	}

	c.mu.Lock()
	next, err := c.router.Normalize(NormalizeParams{
		RouteNames:       c.routeNames,
		CurrentState:     restored,
		InitialRouteName: c.initialRouteName,
	})
	if err == nil && c.stale(next) {
		next, err = c.reconcile(next, c.routeNames)
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.notify(listeners, next)
	return nil
}
