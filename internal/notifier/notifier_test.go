package notifier_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/notifier"
	"github.com/rocketscienceinc/battleship-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishSubscribe(t *testing.T) {
	ctx, s := suite.New(t)

	gameNotifier := notifier.New(s.Logger, s.Storage)

	// Given: a subscriber on all game channels
	events := gameNotifier.Subscribe(ctx)

	snapshot := &entity.Snapshot{
		GameID:   "game-42",
		PlayerID: "p2",
		Turn:     entity.SeatPlayer1,
	}

	// When: publishing until the subscription picks it up; pub/sub has no
	// replay, so the first publishes may land before the subscriber is wired
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	deadline := time.After(15 * time.Second)

	for {
		select {
		case <-ticker.C:
			require.NoError(t, gameNotifier.Publish(ctx, snapshot.GameID, snapshot))
		case event := <-events:
			// Then: the event carries the game id and the snapshot payload
			assert.Equal(t, "game-42", event.GameID)

			var received entity.Snapshot
			require.NoError(t, json.Unmarshal(event.Payload, &received))
			assert.Equal(t, "p2", received.PlayerID)
			assert.Equal(t, entity.SeatPlayer1, received.Turn)

			return
		case <-deadline:
			t.Fatal("no event received before the deadline")
		}
	}
}
