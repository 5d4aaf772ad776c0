package probe

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Phase discriminates the variants of State.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// State is a snapshot of a connection probe. Message and Data are only set
// in PhaseSuccess, Err only in PhaseFailure.
type State struct {
	Phase   Phase
	Message string
	Data    []string

	// Err carries the failure detail on the probing side. It is not
	// transferred over the status API and may be nil on decoded states.
	Err *ConnectivityFailure
}

func loadingState() State {
	return State{Phase: PhaseLoading}
}

func successState(p *Payload) State {
	data := make([]string, len(p.Data))
	copy(data, p.Data)

	return State{Phase: PhaseSuccess, Message: p.Message, Data: data}
}

func failureState(f *ConnectivityFailure) State {
	return State{Phase: PhaseFailure, Err: f}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s.Phase == PhaseSuccess || s.Phase == PhaseFailure
}

func (s State) clone() State {
	if s.Data != nil {
		data := make([]string, len(s.Data))
		copy(data, s.Data)
		s.Data = data
	}
	return s
}

type stateJSON struct {
	Phase   Phase     `json:"phase"`
	Message string    `json:"message,omitempty"`
	Data    *[]string `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{Phase: s.Phase}

	switch s.Phase {
	case PhaseSuccess:
		data := s.Data
		if data == nil {
			data = []string{}
		}
		out.Message = s.Message
		out.Data = &data
	case PhaseFailure:
		out.Error = FailureMessage
	}

	return json.Marshal(out)
}

func (s *State) UnmarshalJSON(b []byte) error {
	in := stateJSON{}
	if err := json.Unmarshal(b, &in); err != nil {
		return errors.Wrap(err, "failed to decode probe state")
	}

	switch in.Phase {
	case PhaseLoading, PhaseFailure:
		*s = State{Phase: in.Phase}
	case PhaseSuccess:
		*s = State{Phase: in.Phase, Message: in.Message, Data: []string{}}
		if in.Data != nil {
			s.Data = *in.Data
		}
	default:
		return errors.Errorf("unknown probe phase %q", in.Phase)
	}

	return nil
}
