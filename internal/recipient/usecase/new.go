package usecase

import (
	"broadcast-srv/internal/recipient"
	"broadcast-srv/internal/recipient/repository"
	pkgLog "broadcast-srv/pkg/log"
)

// batchSize is how many directory rows are fetched per page while resolving.
const batchSize = 500

type implResolver struct {
	l    pkgLog.Logger
	repo repository.Repository
}

var _ recipient.Resolver = &implResolver{}

func New(l pkgLog.Logger, repo repository.Repository) *implResolver {
	return &implResolver{
		l:    l,
		repo: repo,
	}
}
