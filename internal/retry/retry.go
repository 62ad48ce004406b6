// Package retry resolves warnings that the user can confirm away.
//
// Two warnings are recoverable: setting a key that already exists (the
// user may replace the old value) and clearing without the force flag
// (the user may confirm the clear). Every other warning is final.
package retry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"reis/internal/action"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// LinePrompter writes the question to Out and reads one line from In.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Confirm reports whether the answer starts with 'y' or 'Y'.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	fmt.Fprintf(p.Out, "%s (Y/n) ", question)

	response, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && response != "") {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return IsAffirmative(response), nil
}

// IsAffirmative reports whether response starts with 'y' or 'Y'.
func IsAffirmative(response string) bool {
	return strings.HasPrefix(strings.ToLower(response), "y")
}

// FollowUp returns the question to ask for w and the action to run if the
// user agrees. ok is false for warnings that cannot be retried.
func FollowUp(w *action.Warning) (question string, next action.Action, ok bool) {
	switch w.Kind {
	case action.EntryAlreadyExists:
		question = fmt.Sprintf("The key %s already exists with the value %s. Do you want to replace it?", w.Key, w.OldValue)
		return question, action.Put{Key: w.Key, Value: w.NewValue}, true
	case action.RequiredArgumentsNotSpecified:
		if w.Operation != action.KindClear {
			return "", nil, false
		}
		return "This action is permanent and will remove every entry. Do you want to continue?",
			action.Clear{Flags: action.NewFlags(action.Force)}, true
	default:
		return "", nil, false
	}
}

// Result is the final outcome of Run. Exactly one of Success, Warning or
// Canceled is set.
type Result struct {
	Success  *action.Success
	Warning  *action.Warning
	Canceled bool
	// PromptErr is set when reading the answer failed; the action is
	// then treated as canceled.
	PromptErr error
}

// Executor runs a single action.
type Executor interface {
	Execute(a action.Action) (action.Success, error)
}

// Run executes a and, if it ends in a recoverable warning, asks the user
// and runs the follow-up action once. A non-warning error from the
// executor is returned as is.
func Run(exec Executor, a action.Action, p Prompter) (Result, error) {
	retried := false
	for {
		res, err := exec.Execute(a)
		if err == nil {
			return Result{Success: &res}, nil
		}

		var w *action.Warning
		if !errors.As(err, &w) {
			return Result{}, err
		}

		question, next, ok := FollowUp(w)
		if !ok || retried {
			return Result{Warning: w}, nil
		}

		yes, err := p.Confirm(question)
		if err != nil {
			return Result{Canceled: true, PromptErr: err}, nil
		}
		if !yes {
			return Result{Canceled: true}, nil
		}
		a, retried = next, true
	}
}
