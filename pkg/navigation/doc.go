// Package navigation provides the state machine behind tab navigators.
//
// A tab navigator shows one of a fixed set of named routes at a time. Its
// [State] records the routes, which one is focused, and a key identifying
// the navigator instance. [TabRouter] computes states:
//
//   - [TabRouter.Normalize] builds a fresh state from the configured route
//     names, or fills in the fields a persisted state is missing.
//   - [TabRouter.Reduce] applies an [Action] and returns the next state, nil
//     when the action is not for this navigator, or the same state for
//     action types it does not know.
//
// Both are pure: they never modify their inputs, and replaying the same
// state and action always gives the same result. The only side effect is
// key generation, which goes through an injectable [KeyGenerator].
//
// # Hosting
//
// [TabController] is a small host around a router. It keeps the current
// state, serializes dispatch, forwards unhandled actions to a parent
// [Dispatcher], reconciles the route list when the tabs change, and notifies
// listeners:
//
//	tabs, err := navigation.NewTabController(nil, navigation.TabControllerConfig{
//	    RouteNames: []string{"Home", "Search", "Profile"},
//	})
//	unsubscribe := tabs.AddListener(func(s *navigation.State) {
//	    route, _ := s.Focused()
//	    log.Println("focused", route.Name)
//	})
//	defer unsubscribe()
//
//	tabs.Dispatch(navigation.Navigate("Search"))
//
// # Persistence
//
// States serialize as plain JSON or YAML. [EncodeSnapshot] and
// [DecodeSnapshot] wrap a state in a versioned envelope; [DecodeActions]
// reads action scripts for replay.
package navigation
