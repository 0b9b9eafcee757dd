package entities

// EventContext captures what the orchestrator needs to know about the
// workflow event that triggered the run.
type EventContext struct {
	// Name is the GitHub event name, e.g. "pull_request" or "push".
	Name string

	// BaseRef is the base branch for pull request style events.
	BaseRef string

	// HeadRef is the source branch for pull request style events.
	HeadRef string
}

var pullRequestEvents = map[string]bool{
	"pull_request":                true,
	"pull_request_target":         true,
	"pull_request_review":         true,
	"pull_request_review_comment": true,
}

// IsPullRequest reports whether the event belongs to the pull request family
func (e EventContext) IsPullRequest() bool {
	return pullRequestEvents[e.Name]
}
