package githubclt

import (
	"context"

	"go.uber.org/zap"

	"github.com/simplesurance/labelbot/internal/logfields"
)

type labelLister interface {
	ListLabels(ctx context.Context, owner, repo string, issueOrPRNr int) ([]Label, error)
}

// DryClient is a github-client that does not do any changes on github.
// All operations that could cause a change are simulated and always succeed.
// Read operations are forwarded to the wrapped client.
type DryClient struct {
	clt    labelLister
	logger *zap.Logger
}

func NewDryClient(clt labelLister, logger *zap.Logger) *DryClient {
	return &DryClient{
		clt:    clt,
		logger: logger.Named("dry_github_client"),
	}
}

func (c *DryClient) ListLabels(ctx context.Context, owner, repo string, issueOrPRNr int) ([]Label, error) {
	return c.clt.ListLabels(ctx, owner, repo, issueOrPRNr)
}

func (c *DryClient) AddLabel(_ context.Context, owner, repo string, issueOrPRNr int, label string) error {
	c.logger.Info("simulated adding of github label, no label added on github",
		logfields.Event("github_label_add_simulated"),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Issue(issueOrPRNr),
		logfields.Label(label),
	)

	return nil
}

func (c *DryClient) RemoveLabel(_ context.Context, owner, repo string, issueOrPRNr int, label string) error {
	c.logger.Info("simulated removing of github label, no label removed on github",
		logfields.Event("github_label_remove_simulated"),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Issue(issueOrPRNr),
		logfields.Label(label),
	)

	return nil
}
