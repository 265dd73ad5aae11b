package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	listRepository "cartsync/internal/list/repository"
	"cartsync/internal/model"
	"cartsync/internal/share/repository"
	pkgLog "cartsync/pkg/log"
)

// profileCacheSize bounds the invitee lookup cache. Shares are rare
// compared to item edits, so a small cache is plenty.
const (
	profileCacheSize = 256
	profileCacheTTL  = 5 * time.Minute
)

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	listRepo listRepository.ListRepository

	// profiles caches email -> profile lookups so repeated invites to
	// the same address skip the gateway round trip.
	profiles *expirable.LRU[string, model.Profile]
}

// New creates a new share UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository, listRepo listRepository.ListRepository) *implUseCase {
	return &implUseCase{
		l:        l,
		repo:     repo,
		listRepo: listRepo,
		profiles: expirable.NewLRU[string, model.Profile](profileCacheSize, nil, profileCacheTTL),
	}
}
