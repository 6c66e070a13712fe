package logfields

import "go.uber.org/zap"

func Issue(val int) zap.Field {
	return zap.Int("github.issue", val)
}

func Repository(val string) zap.Field {
	return zap.String("git.repository", val)
}

func RepositoryOwner(val string) zap.Field {
	return zap.String("github.repository_owner", val)
}

func Label(val string) zap.Field {
	return zap.String("github.label", val)
}
