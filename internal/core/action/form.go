package action

import (
	"context"
	"encoding/json"
	"net/url"
)

// RunForm adapts a flat browser form submission (key/value pairs keyed
// by the input struct's json tags) into the same validation pipeline as
// Run, supporting progressive-enhancement form posts alongside
// programmatic JSON calls. Repeated keys keep their first value; all
// target fields must be strings.
func (a *Action[In, Out]) RunForm(ctx context.Context, form url.Values) Result[Out] {
	in, err := decodeForm[In](form)
	if err != nil {
		return Failure[Out]("invalid form payload")
	}
	return a.Run(ctx, in)
}

func decodeForm[In any](form url.Values) (In, error) {
	var in In

	flat := make(map[string]string, len(form))
	for key, values := range form {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}

	raw, err := json.Marshal(flat)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, err
	}
	return in, nil
}
