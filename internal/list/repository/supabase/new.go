package supabase

import (
	"github.com/supabase-community/postgrest-go"

	"cartsync/internal/model"
	pkgLog "cartsync/pkg/log"
	pkgSupabase "cartsync/pkg/supabase"
)

// Gateway table names for the list domain.
const (
	tableLists = "shopping_lists"
	tableItems = "list_items"
)

type implRepository struct {
	client *pkgSupabase.Client
	l      pkgLog.Logger
}

// New creates a list repository backed by the Supabase PostgREST
// gateway.
func New(client *pkgSupabase.Client, l pkgLog.Logger) *implRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

// rest returns a REST client scoped to the caller, so row-level
// policies apply to every query.
func (r *implRepository) rest(sc model.Scope) *postgrest.Client {
	return r.client.Rest(sc.AccessToken)
}
