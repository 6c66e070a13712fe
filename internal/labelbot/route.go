package labelbot

import (
	"context"
	"sort"
	"strings"

	"github.com/simplesurance/labelbot/internal/cfg"
	"github.com/simplesurance/labelbot/internal/labeler"
)

// HandlerFunc processes the payload of a github webhook event.
type HandlerFunc func(ctx context.Context, eventType string, payload map[string]any) error

// Route defines for which event types a HandlerFunc is run.
type Route struct {
	name       string
	eventTypes []string
	fn         HandlerFunc
}

func NewRoute(name string, eventTypes []string, fn HandlerFunc) *Route {
	return &Route{
		name:       name,
		eventTypes: eventTypes,
		fn:         fn,
	}
}

// Matches returns true if the route handles events of eventType.
func (r *Route) Matches(eventType string) bool {
	for _, t := range r.eventTypes {
		if t == eventType {
			return true
		}
	}

	return false
}

func (r *Route) String() string {
	return r.name
}

// DetailedString returns the name and event types of the route.
func (r *Route) DetailedString() string {
	return r.name + " (" + strings.Join(r.eventTypes, ", ") + ")"
}

type Routes []*Route

func (rr Routes) String() string {
	names := make([]string, 0, len(rr))
	for _, r := range rr {
		names = append(names, r.DetailedString())
	}

	return strings.Join(names, "; ")
}

// EventTypes returns the sorted union of the event types of all routes.
func (rr Routes) EventTypes() []string {
	seen := map[string]struct{}{}
	var result []string

	for _, r := range rr {
		for _, t := range r.eventTypes {
			if _, exists := seen[t]; exists {
				continue
			}

			seen[t] = struct{}{}
			result = append(result, t)
		}
	}

	sort.Strings(result)

	return result
}

const (
	PendingAuthorRouteName = "pending_author"
	ReviewLabelsRouteName  = "review_labels"
)

func PendingAuthorRoute(p *labeler.Processor) *Route {
	return NewRoute(
		PendingAuthorRouteName,
		[]string{
			labeler.EventIssueComment,
			labeler.EventPullRequestReviewComment,
			labeler.EventPullRequest,
		},
		p.ProcessPendingAuthor,
	)
}

func ReviewLabelsRoute(p *labeler.Processor) *Route {
	return NewRoute(
		ReviewLabelsRouteName,
		[]string{labeler.EventPullRequest},
		p.ProcessReviewLabels,
	)
}

// RoutesFromCfg returns the routes that are enabled in the configuration.
func RoutesFromCfg(config *cfg.Config, clt labeler.IssueClient) Routes {
	p := labeler.NewProcessor(
		clt,
		labeler.WithPendingAuthorLabel(config.PendingAuthor.Label),
		labeler.WithReviewRequiredLabel(config.ReviewLabels.ReviewRequiredLabel),
		labeler.WithReadyToMergeLabel(config.ReviewLabels.ReadyToMergeLabel),
	)

	var result Routes

	if !config.PendingAuthor.Disabled {
		result = append(result, PendingAuthorRoute(p))
	}

	if !config.ReviewLabels.Disabled {
		result = append(result, ReviewLabelsRoute(p))
	}

	return result
}
