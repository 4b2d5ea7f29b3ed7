package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"ctchen222/tictactoe/internal/db"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestNew(t *testing.T) {
	event, err := New(TypeGameOver, GameOverPayload{RoomID: "r1", GameID: "g1", Status: "win", Winner: "X", Moves: 5})
	require.NoError(t, err)
	assert.Equal(t, TypeGameOver, event.Type)
	assert.JSONEq(t, `{"room_id":"r1","game_id":"g1","status":"win","winner":"X","moves":5}`, string(event.Payload))

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"game_over"`)
}

func TestNewRejectsUnmarshalablePayload(t *testing.T) {
	_, err := New(TypeMoveApplied, make(chan int))
	assert.Error(t, err)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pub := NewLogPublisher(logger)

	event, err := New(TypeMoveApplied, MoveAppliedPayload{RoomID: "r1", Mark: "X", Cell: 4})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(context.Background(), event))
	require.NoError(t, pub.Close())

	out := buf.String()
	assert.Contains(t, out, "event=move_applied")
	assert.Contains(t, out, `\"cell\":4`)
}

func TestRedisPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("could not start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb, err := db.NewRedisClient(ctx, opts.Addr)
	require.NoError(t, err)
	pub := NewRedisPublisher(rdb, "")
	defer pub.Close()

	watcher := redis.NewClient(opts)
	defer watcher.Close()
	sub := watcher.Subscribe(ctx, EventsChannel)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	event, err := New(TypeGameStarted, GameStartedPayload{RoomID: "r1", GameID: "g1", Width: 3, FirstMark: "X"})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(ctx, event))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, TypeGameStarted, got.Type)

		var payload GameStartedPayload
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.Equal(t, "g1", payload.GameID)
		assert.Equal(t, 3, payload.Width)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}
