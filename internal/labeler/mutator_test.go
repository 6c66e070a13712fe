package labeler

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/labelbot/internal/githubclt"
	"github.com/simplesurance/labelbot/internal/labeler/mocks"
)

const repoOwner = "org"
const repo = "repo"

func labels(names ...string) []githubclt.Label {
	result := make([]githubclt.Label, 0, len(names))
	for _, n := range names {
		result = append(result, githubclt.Label{Name: n})
	}

	return result
}

// mockListLabelsCall configures the mock to return labels for issueNr.
// It is configured to expect exactly 1 invocation.
func mockListLabelsCall(clt *mocks.MockIssueClient, issueNr int, result []githubclt.Label) *gomock.Call {
	return clt.
		EXPECT().
		ListLabels(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(issueNr)).
		Return(result, nil)
}

func mockAddLabelCall(clt *mocks.MockIssueClient, issueNr int, label string) *gomock.Call {
	return clt.
		EXPECT().
		AddLabel(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(issueNr), gomock.Eq(label)).
		Return(nil)
}

func mockRemoveLabelCall(clt *mocks.MockIssueClient, issueNr int, label string) *gomock.Call {
	return clt.
		EXPECT().
		RemoveLabel(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(issueNr), gomock.Eq(label)).
		Return(nil)
}

func TestEnsureLabelPresent(t *testing.T) {
	testcases := []struct {
		name          string
		currentLabels []githubclt.Label
		expectAdd     bool
	}{
		{name: "noLabels", currentLabels: nil, expectAdd: true},
		{name: "otherLabels", currentLabels: labels("bug", "RTM"), expectAdd: true},
		{name: "differentCase", currentLabels: labels("Review Required"), expectAdd: true},
		{name: "alreadySet", currentLabels: labels("bug", "review required"), expectAdd: false},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			clt := mocks.NewMockIssueClient(gomock.NewController(t))
			mockListLabelsCall(clt, 1, tc.currentLabels)
			if tc.expectAdd {
				mockAddLabelCall(clt, 1, "review required")
			}

			err := NewMutator(clt).EnsureLabelPresent(context.Background(), repoOwner, repo, 1, "review required")
			require.NoError(t, err)
		})
	}
}

func TestEnsureLabelAbsent(t *testing.T) {
	testcases := []struct {
		name          string
		currentLabels []githubclt.Label
		expectRemove  bool
	}{
		{name: "noLabels", currentLabels: nil, expectRemove: false},
		{name: "otherLabels", currentLabels: labels("bug"), expectRemove: false},
		{name: "differentCase", currentLabels: labels("rtm"), expectRemove: false},
		{name: "set", currentLabels: labels("bug", "RTM"), expectRemove: true},
		{name: "setTwice", currentLabels: labels("RTM", "bug", "RTM"), expectRemove: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			clt := mocks.NewMockIssueClient(gomock.NewController(t))
			mockListLabelsCall(clt, 1, tc.currentLabels)
			if tc.expectRemove {
				mockRemoveLabelCall(clt, 1, "RTM")
			}

			err := NewMutator(clt).EnsureLabelAbsent(context.Background(), repoOwner, repo, 1, "RTM")
			require.NoError(t, err)
		})
	}
}

func TestMutatorReturnsClientErrorsUnchanged(t *testing.T) {
	listErr := errors.New("list failed")
	addErr := errors.New("add failed")

	t.Run("listFails", func(t *testing.T) {
		clt := mocks.NewMockIssueClient(gomock.NewController(t))
		clt.EXPECT().ListLabels(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, listErr)

		err := NewMutator(clt).EnsureLabelAbsent(context.Background(), repoOwner, repo, 1, "RTM")
		assert.Same(t, listErr, err)
	})

	t.Run("addFails", func(t *testing.T) {
		clt := mocks.NewMockIssueClient(gomock.NewController(t))
		mockListLabelsCall(clt, 1, nil)
		clt.EXPECT().AddLabel(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(addErr)

		err := NewMutator(clt).EnsureLabelPresent(context.Background(), repoOwner, repo, 1, "RTM")
		assert.Same(t, addErr, err)
	})
}
