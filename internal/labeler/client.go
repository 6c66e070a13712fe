package labeler

import (
	"context"

	"github.com/simplesurance/labelbot/internal/githubclt"
)

//go:generate mockgen -destination mocks/issueclient.go -package mocks . IssueClient

// IssueClient reads and changes labels of issues and pull requests on the
// source-hosting service.
// Errors returned by its methods are passed through unchanged to the callers
// of Mutator and Processor.
type IssueClient interface {
	ListLabels(ctx context.Context, owner, repo string, issueOrPRNr int) ([]githubclt.Label, error)
	AddLabel(ctx context.Context, owner, repo string, issueOrPRNr int, label string) error
	RemoveLabel(ctx context.Context, owner, repo string, issueOrPRNr int, label string) error
}
