package view

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/mittwald/lcms-probe/pkg/probe"
	"github.com/pkg/errors"
)

// TemplateData is the value templates given to RenderTemplate are executed
// against.
type TemplateData struct {
	Phase   string
	Message string
	Data    []string
	Error   string
}

func newTemplateData(state probe.State) TemplateData {
	data := TemplateData{
		Phase:   string(state.Phase),
		Message: state.Message,
		Data:    state.Data,
	}
	if state.Phase == probe.PhaseFailure {
		data.Error = probe.FailureMessage
	}
	if data.Data == nil {
		data.Data = []string{}
	}
	return data
}

// RenderTemplate executes a Go template with the sprig function library
// against the given state.
func RenderTemplate(tpl string, state probe.State) (string, error) {
	t, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(tpl)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse output template")
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, newTemplateData(state)); err != nil {
		return "", errors.Wrap(err, "failed to execute output template")
	}

	return buf.String(), nil
}
