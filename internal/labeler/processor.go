// Package labeler decides which label changes a github webhook event causes
// and applies them.
//
// Two rules are implemented:
//   - pending author: the "pending author" label is removed when the author of
//     an issue or pull request comments on it or pushes new commits to it.
//   - review labels: opened and updated pull requests get the "review required"
//     label, updated pull requests lose the "RTM" (ready to merge) label.
//
// All decisions are made from the event payload only. Errors from the
// IssueClient are returned unchanged, nothing is logged or retried.
package labeler

import (
	"context"
)

// Github webhook event types.
const (
	EventIssueComment             = "issue_comment"
	EventPullRequestReviewComment = "pull_request_review_comment"
	EventPullRequest              = "pull_request"
)

// Values of the action field of webhook payloads.
const (
	ActionCreated     = "created"
	ActionOpened      = "opened"
	ActionSynchronize = "synchronize"
)

const (
	DefPendingAuthorLabel  = "pending author"
	DefReviewRequiredLabel = "review required"
	DefReadyToMergeLabel   = "RTM"
)

// subject are the fields of the issue or pull request an event refers to.
type subject struct {
	number   *payloadField
	authorID *payloadField
}

var (
	issueSubject = &subject{
		number:   mustCompileField(".issue.number"),
		authorID: mustCompileField(".issue.user.id"),
	}
	pullRequestSubject = &subject{
		number:   mustCompileField(".pull_request.number"),
		authorID: mustCompileField(".pull_request.user.id"),
	}
)

var pendingAuthorSubjects = map[string]*subject{
	EventIssueComment:             issueSubject,
	EventPullRequestReviewComment: pullRequestSubject,
	EventPullRequest:              pullRequestSubject,
}

// Processor evaluates the label rules for webhook events and applies the
// resulting label changes via a Mutator.
type Processor struct {
	mutator *Mutator

	pendingAuthorLabel  string
	reviewRequiredLabel string
	readyToMergeLabel   string
}

type Option func(*Processor)

func WithPendingAuthorLabel(name string) Option {
	return func(p *Processor) {
		p.pendingAuthorLabel = name
	}
}

func WithReviewRequiredLabel(name string) Option {
	return func(p *Processor) {
		p.reviewRequiredLabel = name
	}
}

func WithReadyToMergeLabel(name string) Option {
	return func(p *Processor) {
		p.readyToMergeLabel = name
	}
}

func NewProcessor(clt IssueClient, opts ...Option) *Processor {
	p := Processor{
		mutator:             NewMutator(clt),
		pendingAuthorLabel:  DefPendingAuthorLabel,
		reviewRequiredLabel: DefReviewRequiredLabel,
		readyToMergeLabel:   DefReadyToMergeLabel,
	}

	for _, o := range opts {
		o(&p)
	}

	return &p
}

// ProcessPendingAuthor removes the pending author label when the event
// originates from the author of the issue or pull request.
//
// Only events with the actions "created" and "synchronize" are evaluated.
// A synchronize event has no comment and is always attributed to the author.
// Events of other types than issue_comment, pull_request_review_comment and
// pull_request are ignored.
func (p *Processor) ProcessPendingAuthor(ctx context.Context, eventName string, payload map[string]any) error {
	subj, exists := pendingAuthorSubjects[eventName]
	if !exists {
		return nil
	}

	action, err := fieldAction.String(ctx, payload)
	if err != nil {
		return err
	}

	if action != ActionCreated && action != ActionSynchronize {
		return nil
	}

	issue, err := issueRefFromPayload(ctx, payload, subj.number)
	if err != nil {
		return err
	}

	issueAuthorID, err := subj.authorID.Int(ctx, payload)
	if err != nil {
		return err
	}

	commentAuthorID := issueAuthorID
	if action != ActionSynchronize {
		commentAuthorID, err = fieldCommentAuthorID.Int(ctx, payload)
		if err != nil {
			return err
		}
	}

	if commentAuthorID != issueAuthorID {
		return nil
	}

	return p.mutator.EnsureLabelAbsent(ctx, issue.RepositoryOwner, issue.Repository, issue.Number, p.pendingAuthorLabel)
}

// ProcessReviewLabels adds the review required label to opened and
// synchronized pull requests. For synchronized pull requests additionally the
// ready to merge label is removed.
// Events of other types than pull_request are ignored.
func (p *Processor) ProcessReviewLabels(ctx context.Context, eventName string, payload map[string]any) error {
	if eventName != EventPullRequest {
		return nil
	}

	action, err := fieldAction.String(ctx, payload)
	if err != nil {
		return err
	}

	if action != ActionOpened && action != ActionSynchronize {
		return nil
	}

	pr, err := issueRefFromPayload(ctx, payload, fieldNumber)
	if err != nil {
		return err
	}

	err = p.mutator.EnsureLabelPresent(ctx, pr.RepositoryOwner, pr.Repository, pr.Number, p.reviewRequiredLabel)
	if err != nil {
		return err
	}

	if action == ActionSynchronize {
		return p.mutator.EnsureLabelAbsent(ctx, pr.RepositoryOwner, pr.Repository, pr.Number, p.readyToMergeLabel)
	}

	return nil
}

func issueRefFromPayload(ctx context.Context, payload map[string]any, numberField *payloadField) (*IssueRef, error) {
	fullName, err := fieldRepositoryFullName.String(ctx, payload)
	if err != nil {
		return nil, err
	}

	nr, err := numberField.Int(ctx, payload)
	if err != nil {
		return nil, err
	}

	return ParseIssueRef(fullName, nr)
}
