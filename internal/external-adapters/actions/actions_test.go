package actions

import (
	"io"

	"github.com/sethvargo/go-githubactions"
)

// newTestAction creates an action that reads env instead of the process environment
func newTestAction(out io.Writer, env map[string]string) *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(out),
		githubactions.WithGetenv(func(key string) string { return env[key] }),
	)
}
