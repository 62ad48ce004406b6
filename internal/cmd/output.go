package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"reis/internal/retry"
)

const (
	canceledMessage  = "Operation canceled!"
	readInputMessage = "Sorry, an error occurred when attempting to read your input!"
)

// resultJSON is the --json form of a command outcome.
type resultJSON struct {
	Status    string `json:"status"` // success, warning, canceled or failure
	Operation string `json:"operation,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message,omitempty"`
	Value     string `json:"value,omitempty"`
	Count     *int   `json:"count,omitempty"`
}

func writeJSON(w io.Writer, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

// report prints the outcome of a resolved action.
func (a *App) report(res retry.Result) {
	switch {
	case res.Success != nil:
		if a.JSON {
			_, op := res.Success.Op.Names()
			writeJSON(a.Out, resultJSON{
				Status:    "success",
				Operation: op,
				Message:   res.Success.Message,
				Value:     res.Success.Value,
			})
			return
		}
		fmt.Fprintln(a.Out, a.SuccessColor(res.Success.Message))

	case res.Warning != nil:
		if a.JSON {
			writeJSON(a.Out, resultJSON{Status: "warning", Kind: res.Warning.Kind.String(), Message: res.Warning.Error()})
			return
		}
		fmt.Fprintln(a.Out, a.WarnColor(res.Warning.Error()))

	default:
		msg := canceledMessage
		if res.PromptErr != nil {
			msg = readInputMessage
			a.Log.Error().Err(res.PromptErr).Msg("reading confirmation")
		}
		if a.JSON {
			writeJSON(a.Out, resultJSON{Status: "canceled", Message: msg})
			return
		}
		fmt.Fprintln(a.Out, a.WarnColor(msg))
	}
}
