package actions

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DonIsaac/zlint-action/internal/domain/entities"
)

// IsActions reports whether the process runs inside a GitHub Actions job
func IsActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// eventPayload is the part of the webhook payload we read
type eventPayload struct {
	PullRequest *struct {
		Base struct {
			Ref string `json:"ref"`
		} `json:"base"`
		Head struct {
			Ref string `json:"ref"`
		} `json:"head"`
	} `json:"pull_request"`
}

// EventFromEnv builds the EventContext for the current job. Refs come from
// GITHUB_BASE_REF/GITHUB_HEAD_REF and fall back to the payload at
// GITHUB_EVENT_PATH. A payload that cannot be read is reported alongside
// whatever could be determined.
func EventFromEnv() (entities.EventContext, error) {
	event := entities.EventContext{
		Name:    os.Getenv("GITHUB_EVENT_NAME"),
		BaseRef: os.Getenv("GITHUB_BASE_REF"),
		HeadRef: os.Getenv("GITHUB_HEAD_REF"),
	}

	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" || (event.BaseRef != "" && event.HeadRef != "") {
		return event, nil
	}

	payload, err := readPayload(path)
	if err != nil {
		return event, err
	}
	if pr := payload.PullRequest; pr != nil {
		if event.BaseRef == "" {
			event.BaseRef = pr.Base.Ref
		}
		if event.HeadRef == "" {
			event.HeadRef = pr.Head.Ref
		}
	}
	return event, nil
}

func readPayload(path string) (*eventPayload, error) {
	//nolint:gosec // G304: path is provided by the runner via GITHUB_EVENT_PATH
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}
	return &payload, nil
}
