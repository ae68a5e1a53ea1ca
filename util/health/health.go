// Package health aggregates liveness and readiness probes of the vault dependencies into a
// single status report.
package health

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Check is a named probe. The bool passed to Check selects a liveness probe over a
// readiness probe.
type Check struct {
	Name  string
	Check func(context.Context, bool) (int, string, error)
}

type dependency struct {
	Resource     string              `json:"resource"`
	Status       int                 `json:"status"`
	Error        string              `json:"error,omitempty"`
	Message      string              `json:"message,omitempty"`
	Dependencies jsoniter.RawMessage `json:"dependencies,omitempty"`
}

type report struct {
	Status       int          `json:"status"`
	Dependencies []dependency `json:"dependencies"`
}

// CheckAll runs every check and reports http.StatusOK only when all of them do. Messages that
// are themselves JSON objects are nested as the dependency's own report.
func CheckAll(ctx context.Context, checkLiveness bool, checks []Check) (int, string, error) {
	r := report{
		Status:       http.StatusOK,
		Dependencies: make([]dependency, 0, len(checks)),
	}

	for _, check := range checks {
		status, message, err := check.Check(ctx, checkLiveness)
		if err != nil || status != http.StatusOK {
			r.Status = http.StatusServiceUnavailable
		}

		d := dependency{
			Resource: check.Name,
			Status:   status,
		}

		if err != nil {
			d.Error = err.Error()
		}

		if len(message) > 0 && message[0] == '{' && message[len(message)-1] == '}' && json.Valid([]byte(message)) {
			d.Dependencies = jsoniter.RawMessage(message)
		} else {
			d.Message = message
		}

		r.Dependencies = append(r.Dependencies, d)
	}

	b, err := json.Marshal(r)
	if err != nil {
		return http.StatusInternalServerError, "", err
	}

	return r.Status, string(b), nil
}
