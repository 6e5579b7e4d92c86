package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const channelPrefix = "game:"

// Event is one published snapshot as seen by a subscriber.
type Event struct {
	GameID  string
	Payload []byte
}

// Notifier fans game snapshots out over Redis pub/sub, one channel per
// game. Delivery is best-effort: nothing is persisted and a subscriber
// that missed a message recovers by pulling state, not by replay.
type Notifier struct {
	logger *slog.Logger
	client *redis.Client
}

func New(logger *slog.Logger, client *redis.Client) *Notifier {
	return &Notifier{
		logger: logger.With("component", "notifier"),
		client: client,
	}
}

// Publish sends a snapshot to every current subscriber of the game.
func (that *Notifier) Publish(ctx context.Context, gameID string, snapshot *entity.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Publish(ctx, channelPrefix+gameID, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	return nil
}

// Subscribe listens on every game channel and forwards events until the
// context is done. The returned channel closes when the subscription ends.
func (that *Notifier) Subscribe(ctx context.Context) <-chan Event {
	sub := that.client.PSubscribe(ctx, channelPrefix+"*")
	events := make(chan Event)

	go func() {
		defer close(events)
		defer func() {
			if err := sub.Close(); err != nil {
				that.logger.Error("failed to close subscription", "error", err)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				events <- Event{
					GameID:  strings.TrimPrefix(msg.Channel, channelPrefix),
					Payload: []byte(msg.Payload),
				}
			}
		}
	}()

	return events
}
