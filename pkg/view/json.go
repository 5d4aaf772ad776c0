package view

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

// RenderJSON marshals v as indented JSON, colorized for terminals if
// colored is set.
func RenderJSON(v interface{}, colored bool) (string, error) {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", errors.Wrapf(err, "failed to marshal output as JSON")
	}

	if colored {
		out = pretty.Color(out, nil)
	}

	return string(out), nil
}
