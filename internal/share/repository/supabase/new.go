package supabase

import (
	"github.com/supabase-community/postgrest-go"

	"cartsync/internal/model"
	pkgLog "cartsync/pkg/log"
	pkgSupabase "cartsync/pkg/supabase"
)

// Gateway table names for the share domain.
const (
	tableShares   = "list_shares"
	tableProfiles = "profiles"
)

type implRepository struct {
	client *pkgSupabase.Client
	l      pkgLog.Logger
}

// New creates a share repository backed by the Supabase PostgREST
// gateway.
func New(client *pkgSupabase.Client, l pkgLog.Logger) *implRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) rest(sc model.Scope) *postgrest.Client {
	return r.client.Rest(sc.AccessToken)
}
