package labeler

import (
	"context"

	"github.com/simplesurance/labelbot/internal/githubclt"
)

// Mutator adds and removes labels idempotently.
// Each operation reads the current labels of the issue once and does at most
// one write, nothing is cached between invocations.
type Mutator struct {
	clt IssueClient
}

func NewMutator(clt IssueClient) *Mutator {
	return &Mutator{clt: clt}
}

// EnsureLabelPresent adds label to the issue or pull request if it does not
// have it already.
func (m *Mutator) EnsureLabelPresent(ctx context.Context, owner, repo string, issueOrPRNr int, label string) error {
	labels, err := m.clt.ListLabels(ctx, owner, repo, issueOrPRNr)
	if err != nil {
		return err
	}

	if containsLabel(labels, label) {
		return nil
	}

	return m.clt.AddLabel(ctx, owner, repo, issueOrPRNr, label)
}

// EnsureLabelAbsent removes label from the issue or pull request if it is
// set.
// If the label is listed multiple times, only one remove call is issued.
func (m *Mutator) EnsureLabelAbsent(ctx context.Context, owner, repo string, issueOrPRNr int, label string) error {
	labels, err := m.clt.ListLabels(ctx, owner, repo, issueOrPRNr)
	if err != nil {
		return err
	}

	if !containsLabel(labels, label) {
		return nil
	}

	return m.clt.RemoveLabel(ctx, owner, repo, issueOrPRNr, label)
}

// containsLabel returns true if labels contains a label named name.
// Names are compared case-sensitive.
func containsLabel(labels []githubclt.Label, name string) bool {
	for _, l := range labels {
		if l.Name == name {
			return true
		}
	}

	return false
}
