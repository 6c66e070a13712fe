package labeler

import (
	"fmt"
	"strings"
)

// IssueRef identifies an issue or pull request.
type IssueRef struct {
	RepositoryOwner string
	Repository      string
	Number          int
}

// ParseIssueRef creates an IssueRef from a repository full name in the
// format "<owner>/<name>" and an issue or pull request number.
func ParseIssueRef(repositoryFullName string, number int) (*IssueRef, error) {
	owner, name, found := strings.Cut(repositoryFullName, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, malformedPayloadErr(
			"repository.full_name",
			fmt.Sprintf("%q is not in the format <owner>/<name>", repositoryFullName),
		)
	}

	if number <= 0 {
		return nil, malformedPayloadErr("number", fmt.Sprintf("invalid issue number %d", number))
	}

	return &IssueRef{
		RepositoryOwner: owner,
		Repository:      name,
		Number:          number,
	}, nil
}

func (r *IssueRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.RepositoryOwner, r.Repository, r.Number)
}
