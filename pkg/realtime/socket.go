package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
)

const (
	defaultHeartbeatInterval = 25 * time.Second
	writeTimeout             = 5 * time.Second
	eventBuffer              = 64
)

// Config holds connection settings for the realtime endpoint.
type Config struct {
	// URL is the full websocket URL including the apikey query param.
	URL string

	// HeartbeatInterval keeps the channel connection alive. Defaults to
	// 25s, below the endpoint's 30s idle timeout.
	HeartbeatInterval time.Duration
}

// SubscribeOptions describes one channel subscription.
type SubscribeOptions struct {
	// Topic is the channel topic, e.g. "realtime:list:<uuid>".
	Topic string

	// AccessToken is the user JWT forwarded on join so row-level
	// policies scope the stream.
	AccessToken string

	// Changes are the row-change bindings requested on join.
	Changes []PostgresChange
}

// Subscription is one live channel subscription. Events are delivered
// on Events until the subscription ends; Err reports why it ended.
// The subscription offers no replay buffer — after a drop the caller
// must re-fetch to close the gap.
type Subscription struct {
	conn   *websocket.Conn
	topic  string
	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	err    error
	closed bool

	refMu sync.Mutex
	ref   int
}

// Subscribe dials the realtime endpoint, joins the topic and starts
// the read and heartbeat loops. The subscription ends when ctx is
// canceled, the transport drops, or Close is called.
func Subscribe(ctx context.Context, cfg Config, opts SubscribeOptions) (*Subscription, error) {
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = defaultHeartbeatInterval
	}

	conn, _, err := websocket.Dial(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("realtime dial: %w", err)
	}
	// Change payloads for wide rows can exceed the default read limit.
	conn.SetReadLimit(1 << 20)

	sub := &Subscription{
		conn:   conn,
		topic:  opts.Topic,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}

	join, err := json.Marshal(joinPayload{
		Config:      joinConfig{PostgresChanges: opts.Changes},
		AccessToken: opts.AccessToken,
	})
	if err != nil {
		conn.Close(websocket.StatusInternalError, "join payload")
		return nil, err
	}

	if err := sub.write(ctx, phoenixMessage{
		Topic:   opts.Topic,
		Event:   "phx_join",
		Payload: join,
		Ref:     sub.nextRef(),
	}); err != nil {
		conn.Close(websocket.StatusInternalError, "join")
		return nil, fmt.Errorf("realtime join: %w", err)
	}

	go sub.readLoop(ctx)
	go sub.heartbeatLoop(ctx, cfg.HeartbeatInterval)

	return sub, nil
}

// Events returns the event channel. It is closed when the
// subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Err returns the reason the subscription ended, nil on clean close.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears the subscription down.
func (s *Subscription) Close() error {
	s.finish(nil)
	return nil
}

// finish records the terminal error and closes the transport. The
// events channel is closed by readLoop alone, once its loop exits.
func (s *Subscription) finish(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.err = err
	s.mu.Unlock()

	close(s.done)
	s.conn.Close(websocket.StatusNormalClosure, "unsubscribe")
}

func (s *Subscription) readLoop(ctx context.Context) {
	defer close(s.events)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.finish(ctx.Err())
			} else {
				s.finish(fmt.Errorf("realtime read: %w", err))
			}
			return
		}

		var msg phoenixMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Event {
		case "postgres_changes":
			var payload changePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				continue
			}

			commitTime, _ := time.Parse(time.RFC3339, payload.Data.CommitTimestamp)
			ev := Event{
				Table:      payload.Data.Table,
				Type:       payload.Data.Type,
				CommitTime: commitTime,
				Record:     payload.Data.Record,
				OldRecord:  payload.Data.OldRecord,
			}

			select {
			case s.events <- ev:
			case <-s.done:
				return
			case <-ctx.Done():
				s.finish(ctx.Err())
				return
			}

		case "phx_reply":
			var reply replyPayload
			if err := json.Unmarshal(msg.Payload, &reply); err == nil && reply.Status == "error" {
				s.finish(fmt.Errorf("realtime join rejected on topic %s", msg.Topic))
				return
			}

		case "phx_error", "phx_close":
			s.finish(fmt.Errorf("realtime channel closed: %s", msg.Event))
			return
		}
	}
}

func (s *Subscription) heartbeatLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			msg := phoenixMessage{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage("{}"),
				Ref:     s.nextRef(),
			}
			if err := s.write(ctx, msg); err != nil {
				s.finish(fmt.Errorf("realtime heartbeat: %w", err))
				return
			}
		case <-s.done:
			return
		case <-ctx.Done():
			s.finish(ctx.Err())
			return
		}
	}
}

func (s *Subscription) write(ctx context.Context, msg phoenixMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return s.conn.Write(ctx, websocket.MessageText, data)
}

func (s *Subscription) nextRef() string {
	s.refMu.Lock()
	defer s.refMu.Unlock()
	s.ref++
	return strconv.Itoa(s.ref)
}
