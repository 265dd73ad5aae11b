package usecase

import (
	"cartsync/internal/list/repository"
	"cartsync/internal/model"
	"cartsync/internal/reconciler"
	"cartsync/internal/session"
	"cartsync/internal/share"
	"cartsync/internal/store"
	pkgLog "cartsync/pkg/log"
	"cartsync/pkg/quickadd"
)

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	shareUC  share.UseCase
	sessions *session.Manager
	recon    *reconciler.Reconciler
	parser   *quickadd.Parser
}

// New creates a new list UseCase instance.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	shareUC share.UseCase,
	sessions *session.Manager,
	recon *reconciler.Reconciler,
	parser *quickadd.Parser,
) *implUseCase {
	return &implUseCase{
		l:        l,
		repo:     repo,
		shareUC:  shareUC,
		sessions: sessions,
		recon:    recon,
		parser:   parser,
	}
}

// store resolves the caller's session replica.
func (uc *implUseCase) store(sc model.Scope) (*session.Session, *store.Store) {
	sess := uc.sessions.Get(sc)
	return sess, sess.Store
}
