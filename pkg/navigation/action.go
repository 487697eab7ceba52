package navigation

// ActionType tags an [Action].
type ActionType string

// Action types understood by [TabRouter].
const (
	TypeJumpTo   ActionType = "JUMP_TO"
	TypeNavigate ActionType = "NAVIGATE"
	TypeReset    ActionType = "RESET"
	TypeGoBack   ActionType = "GO_BACK"
)

// Action is an intent to change navigation state, dispatched by a host.
//
// The router recognizes [JumpToAction], [NavigateAction], [ResetAction] and
// [GoBackAction]. Any other implementation passes through unchanged, which
// lets routers in a composed tree ignore actions meant for others.
type Action interface {
	ActionType() ActionType
}

// JumpToAction focuses the route with the given name.
// The name must exist in the state; a missing name is a programming error.
type JumpToAction struct {
	Name string
}

// ActionType implements Action.
func (JumpToAction) ActionType() ActionType { return TypeJumpTo }

// NavigateAction focuses the route with the given name if this navigator
// has one, and is left unhandled otherwise.
type NavigateAction struct {
	Name string
}

// ActionType implements Action.
func (NavigateAction) ActionType() ActionType { return TypeNavigate }

// ResetAction replaces the whole state with State.
//
// Key, when non-empty, restricts the reset to the navigator instance whose
// state has that key. The target's Key and RouteNames are always replaced by
// the current instance's values.
type ResetAction struct {
	State State
	Key   string
}

// ActionType implements Action.
func (ResetAction) ActionType() ActionType { return TypeReset }

// GoBackAction asks for backward navigation. Tabs have no back stack.
type GoBackAction struct{}

// ActionType implements Action.
func (GoBackAction) ActionType() ActionType { return TypeGoBack }

// CustomAction carries an action type owned by some other router.
type CustomAction struct {
	Type    ActionType
	Payload map[string]any
}

// ActionType implements Action.
func (a CustomAction) ActionType() ActionType { return a.Type }

// JumpTo returns an action that focuses the named route.
func JumpTo(name string) Action {
	return JumpToAction{Name: name}
}

// Navigate returns an action that focuses the named route if it exists.
func Navigate(name string) Action {
	return NavigateAction{Name: name}
}

// Reset returns an action that replaces the state of the navigator whose key
// is key. An empty key targets whichever navigator handles it.
func Reset(state State, key string) Action {
	return ResetAction{State: state, Key: key}
}

// GoBack returns a back-navigation action.
func GoBack() Action {
	return GoBackAction{}
}

// TabActions builds the actions specific to tab navigators.
type TabActions struct{}

// JumpTo returns an action that focuses the named tab.
func (TabActions) JumpTo(name string) Action {
	return JumpTo(name)
}
