package navigation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	naverrors "github.com/go-drift/tabnav/pkg/errors"
)

// Format selects the encoding of snapshots and action scripts.
type Format int

const (
	// FormatJSON encodes as JSON.
	FormatJSON Format = iota
	// FormatYAML encodes as YAML.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// ParseFormat parses "json", "yaml" or "yml" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown format %q", s)
	}
}

// SnapshotVersion is the version written into new snapshots.
// Snapshots with the same major version can be decoded.
const SnapshotVersion = "v1.0.0"

// ErrUnsupportedVersion reports a snapshot written by an incompatible version.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Snapshot is the persisted form of a navigation state.
type Snapshot struct {
	Version string `json:"version" yaml:"version"`
	State   *State `json:"state" yaml:"state"`
}

// EncodeSnapshot writes state to w as a versioned snapshot.
func EncodeSnapshot(w io.Writer, state *State, format Format) error {
	return encode(w, Snapshot{Version: SnapshotVersion, State: state}, format)
}

// DecodeSnapshot reads a snapshot from r.
//
// The version must be valid semver with the same major version as
// [SnapshotVersion]. Complete states are validated; partial states are
// returned as read so that [TabRouter.Normalize] can repair them.
func DecodeSnapshot(r io.Reader, format Format) (*State, error) {
	var snap Snapshot
	if err := decode(r, &snap, format); err != nil {
		return nil, parseError("Snapshot", err)
	}

	if !semver.IsValid(snap.Version) || semver.Major(snap.Version) != semver.Major(SnapshotVersion) {
		return nil, &naverrors.NavigationError{
			Op:   "navigation.DecodeSnapshot",
			Kind: naverrors.KindParsing,
			Err:  fmt.Errorf("%w: %q", ErrUnsupportedVersion, snap.Version),
		}
	}
	if snap.State == nil {
		return nil, parseError("Snapshot", errors.New("missing state"))
	}
	if !snap.State.IsPartial() {
		if err := snap.State.Validate(); err != nil {
			return nil, parseError("Snapshot", err)
		}
	}
	return snap.State, nil
}

// ActionPayload carries the fields of any built-in action.
type ActionPayload struct {
	Name  string         `json:"name,omitempty" yaml:"name,omitempty"`
	Key   string         `json:"key,omitempty" yaml:"key,omitempty"`
	State *State         `json:"state,omitempty" yaml:"state,omitempty"`
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// ActionRecord is the serialized form of an [Action].
type ActionRecord struct {
	Type    ActionType    `json:"type" yaml:"type"`
	Payload ActionPayload `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// RecordOf converts an action to its serialized form.
func RecordOf(action Action) ActionRecord {
	switch a := action.(type) {
	case JumpToAction:
		return ActionRecord{Type: TypeJumpTo, Payload: ActionPayload{Name: a.Name}}
	case NavigateAction:
		return ActionRecord{Type: TypeNavigate, Payload: ActionPayload{Name: a.Name}}
	case ResetAction:
		target := a.State.Clone()
		return ActionRecord{Type: TypeReset, Payload: ActionPayload{Key: a.Key, State: target}}
	case GoBackAction:
		return ActionRecord{Type: TypeGoBack}
	case CustomAction:
		return ActionRecord{Type: a.Type, Payload: ActionPayload{Extra: a.Payload}}
	default:
		return ActionRecord{Type: action.ActionType()}
	}
}

// Action converts the record back into an action. Types this package does
// not define become a [CustomAction].
func (rec ActionRecord) Action() (Action, error) {
	switch rec.Type {
	case TypeJumpTo:
		return JumpTo(rec.Payload.Name), nil
	case TypeNavigate:
		return Navigate(rec.Payload.Name), nil
	case TypeReset:
		if rec.Payload.State == nil {
			return nil, errors.New("RESET requires payload.state")
		}
		return Reset(*rec.Payload.State.Clone(), rec.Payload.Key), nil
	case TypeGoBack:
		return GoBack(), nil
	case "":
		return nil, errors.New("missing action type")
	default:
		return CustomAction{Type: rec.Type, Payload: rec.Payload.Extra}, nil
	}
}

// EncodeActions writes actions to w as a list of records.
func EncodeActions(w io.Writer, actions []Action, format Format) error {
	records := make([]ActionRecord, len(actions))
	for i, a := range actions {
		records[i] = RecordOf(a)
	}
	return encode(w, records, format)
}

// DecodeActions reads a list of action records from r.
func DecodeActions(r io.Reader, format Format) ([]Action, error) {
	var records []ActionRecord
	if err := decode(r, &records, format); err != nil {
		return nil, parseError("[]ActionRecord", err)
	}
	actions := make([]Action, len(records))
	for i, rec := range records {
		a, err := rec.Action()
		if err != nil {
			return nil, parseError("ActionRecord", fmt.Errorf("actions[%d]: %w", i, err))
		}
		actions[i] = a
	}
	return actions, nil
}

func encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func decode(r io.Reader, v any, format Format) error {
	switch format {
	case FormatYAML:
		return yaml.NewDecoder(r).Decode(v)
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
}

func parseError(dataType string, err error) error {
	return &naverrors.NavigationError{
		Op:   "navigation.decode",
		Kind: naverrors.KindParsing,
		Err:  &naverrors.ParseError{DataType: dataType, Err: err},
	}
}
