package actions

import (
	"io"

	"github.com/sethvargo/go-githubactions"
)

// NewAction creates an action bound to the process environment that writes
// workflow commands to out
func NewAction(out io.Writer) *githubactions.Action {
	return githubactions.New(githubactions.WithWriter(out))
}

// Runner reports outputs and annotations of one step to the GitHub Actions runner
type Runner struct {
	action *githubactions.Action
}

// NewRunner creates a runner on top of action
func NewRunner(action *githubactions.Action) *Runner {
	return &Runner{action: action}
}

// SetOutput records a step output. Outputs go to the GITHUB_OUTPUT file, or to
// the legacy set-output command when the runner does not provide one.
func (r *Runner) SetOutput(name, value string) {
	r.action.SetOutput(name, value)
}

// Warning emits a warning annotation
func (r *Runner) Warning(msg string) {
	r.action.Warningf("%s", msg)
}

// SetFailed emits an error annotation for a failed run
func (r *Runner) SetFailed(err error) {
	r.action.Errorf("%s", err.Error())
}
