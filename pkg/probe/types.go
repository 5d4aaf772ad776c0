package probe

import "context"

// Probe checks a single backing service of the Legal CMS stack.
type Probe interface {
	Exec(ctx context.Context) error
}

type ProbeResult struct {
	Name    string `json:"-"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type StatusResponse struct {
	Backend State                   `json:"backend"`
	Probes  map[string]*ProbeResult `json:"probes"`
}

// Healthy reports whether the backend is connected and every backing probe
// passed.
func (r *StatusResponse) Healthy() bool {
	if r.Backend.Phase != PhaseSuccess {
		return false
	}
	for _, p := range r.Probes {
		if !p.OK {
			return false
		}
	}
	return true
}
