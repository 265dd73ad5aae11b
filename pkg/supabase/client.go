package supabase

import (
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/postgrest-go"
)

// Client wraps access to a Supabase project: PostgREST for row CRUD
// and GoTrue for token verification. Row-level security applies to
// every query made through a user-scoped REST client.
type Client struct {
	baseURL    string
	projectRef string
	anonKey    string
}

// NewClient creates a Supabase client factory for one project.
func NewClient(baseURL, projectRef, anonKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		projectRef: projectRef,
		anonKey:    anonKey,
	}
}

// Rest returns a PostgREST client scoped to the given user JWT.
// With an empty token the anon key is used, so only public rows are
// visible.
func (c *Client) Rest(token string) *postgrest.Client {
	restURL := c.baseURL + "/rest/v1"

	headers := map[string]string{
		"apikey": c.anonKey,
	}

	client := postgrest.NewClient(restURL, "", headers)
	if token != "" {
		client.SetAuthToken(token)
	} else {
		client.SetAuthToken(c.anonKey)
	}

	return client
}

// Auth returns the GoTrue client for token verification.
func (c *Client) Auth() gotrue.Client {
	return gotrue.New(c.projectRef, c.anonKey)
}

// RealtimeURL returns the websocket endpoint for the realtime change
// stream.
func (c *Client) RealtimeURL() string {
	url := c.baseURL
	if len(url) > 8 && url[:8] == "https://" {
		url = "wss://" + url[8:]
	} else if len(url) > 7 && url[:7] == "http://" {
		url = "ws://" + url[7:]
	}
	return url + "/realtime/v1/websocket?apikey=" + c.anonKey + "&vsn=1.0.0"
}
