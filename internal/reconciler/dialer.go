package reconciler

import (
	"context"
	"fmt"
	"time"

	"cartsync/internal/model"
	"cartsync/pkg/realtime"
	pkgSupabase "cartsync/pkg/supabase"
)

// realtimeDialer opens Phoenix-channel subscriptions against the
// gateway's realtime endpoint.
type realtimeDialer struct {
	client    *pkgSupabase.Client
	heartbeat time.Duration
}

// NewDialer creates the production dialer.
func NewDialer(client *pkgSupabase.Client, heartbeat time.Duration) Dialer {
	return &realtimeDialer{client: client, heartbeat: heartbeat}
}

// Dial joins one topic bound to the list's item, list and share rows.
// The caller's token is forwarded so row-level policies gate the
// stream exactly like REST reads.
func (d *realtimeDialer) Dial(ctx context.Context, sc model.Scope, listID string) (Stream, error) {
	sub, err := realtime.Subscribe(ctx, realtime.Config{
		URL:               d.client.RealtimeURL(),
		HeartbeatInterval: d.heartbeat,
	}, realtime.SubscribeOptions{
		Topic:       fmt.Sprintf("realtime:list:%s", listID),
		AccessToken: sc.AccessToken,
		Changes: []realtime.PostgresChange{
			{Event: "*", Schema: "public", Table: "list_items", Filter: "list_id=eq." + listID},
			{Event: "*", Schema: "public", Table: "shopping_lists", Filter: "id=eq." + listID},
			{Event: "*", Schema: "public", Table: "list_shares", Filter: "list_id=eq." + listID},
		},
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}
