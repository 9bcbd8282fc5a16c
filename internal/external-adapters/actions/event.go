package actions

import (
	"encoding/json"
	"fmt"

	"github.com/sethvargo/go-githubactions"

	"github.com/ochairo/release-assets/internal/domain/entities"
)

// LoadRunContext reads the event that triggered the workflow.
// Outside of a runner it returns an empty context.
func LoadRunContext(action *githubactions.Action) (*entities.RunContext, error) {
	ghctx, err := action.Context()
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	runCtx := &entities.RunContext{EventName: ghctx.EventName}

	release, ok := ghctx.Event["release"]
	if !ok || release == nil {
		return runCtx, nil
	}

	// The payload is decoded generically; re-encode the release object into its typed form
	data, err := json.Marshal(release)
	if err != nil {
		return nil, fmt.Errorf("failed to encode release payload: %w", err)
	}
	var descriptor entities.ReleaseDescriptor
	if err := json.Unmarshal(data, &descriptor); err != nil {
		return nil, fmt.Errorf("failed to decode release payload: %w", err)
	}
	runCtx.Release = &descriptor

	return runCtx, nil
}
