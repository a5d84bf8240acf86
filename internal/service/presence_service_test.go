package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"batepapo-uol/internal/domain"
	"batepapo-uol/internal/repository"
	"batepapo-uol/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPresenceFixture() (*PresenceService, *repository.InMemoryParticipantRepository, *repository.InMemoryMessageRepository) {
	participants := repository.NewInMemoryParticipantRepository()
	messages := repository.NewInMemoryMessageRepository()
	svc := NewPresenceService(participants, messages, newTestLogger(), 10*time.Second, 15*time.Second)
	return svc, participants, messages
}

func TestRegisterEmitsJoinNotice(t *testing.T) {
	svc, participants, messages := newPresenceFixture()
	ctx := context.Background()

	before := time.Now().UnixMilli()
	participant, err := svc.Register(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, "bob", participant.Name)
	assert.GreaterOrEqual(t, participant.LastStatus, before)

	stored, err := participants.FindByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, participant.LastStatus, stored.LastStatus)

	visible, err := messages.FindVisibleTo(ctx, "bob", 0)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "bob", visible[0].From)
	assert.Equal(t, domain.BroadcastTarget, visible[0].To)
	assert.Equal(t, domain.JoinedRoomText, visible[0].Text)
	assert.Equal(t, domain.MessageTypeStatus, visible[0].Type)
}

func TestRegisterDuplicateName(t *testing.T) {
	svc, _, _ := newPresenceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNameTaken)
}

func TestRegisterConcurrentSameName(t *testing.T) {
	svc, participants, messages := newPresenceFixture()
	ctx := context.Background()

	const racers = 32

	results := make(chan error, racers)
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < racers; i++ {
		go func() {
			start.Wait()
			_, err := svc.Register(ctx, "bob")
			results <- err
		}()
	}
	start.Done()

	var successes, conflicts int
	for i := 0; i < racers; i++ {
		err := <-results
		switch {
		case err == nil:
			successes++
		case errors.Is(err, repository.ErrNameTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, racers-1, conflicts)

	all, err := participants.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "bob", all[0].Name)

	// Exactly one join notice for the one registration that won.
	visible, err := messages.FindVisibleTo(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestRegisterSanitizesBeforeUniqueness(t *testing.T) {
	svc, _, _ := newPresenceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob")
	require.NoError(t, err)

	// Same name wrapped in markup collides after sanitization.
	_, err = svc.Register(ctx, "<b>bob</b>")
	assert.ErrorIs(t, err, repository.ErrNameTaken)
}

func TestRegisterInvalidName(t *testing.T) {
	svc, _, _ := newPresenceFixture()
	ctx := context.Background()

	for _, name := range []string{"", "   ", "<img src=x>"} {
		_, err := svc.Register(ctx, name)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr, "name %q", name)
		assert.NotEmpty(t, verr.Messages)
	}
}

func TestPingRefreshesLastStatus(t *testing.T) {
	svc, participants, messages := newPresenceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob")
	require.NoError(t, err)

	stale := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, participants.UpdateLastStatus(ctx, "bob", stale))

	require.NoError(t, svc.Ping(ctx, "bob"))

	refreshed, err := participants.FindByName(ctx, "bob")
	require.NoError(t, err)
	assert.Greater(t, refreshed.LastStatus, stale)

	// Pings never touch the message log.
	require.NoError(t, svc.Ping(ctx, "bob"))
	require.NoError(t, svc.Ping(ctx, "bob"))
	visible, err := messages.FindVisibleTo(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestPingUnknownParticipant(t *testing.T) {
	svc, _, _ := newPresenceFixture()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Ping(ctx, "ghost"), repository.ErrParticipantNotFound)
	assert.ErrorIs(t, svc.Ping(ctx, ""), repository.ErrParticipantNotFound)
}

func TestSweepEvictsStaleParticipants(t *testing.T) {
	svc, participants, messages := newPresenceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob")
	require.NoError(t, err)

	stale := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, participants.UpdateLastStatus(ctx, "alice", stale))

	svc.sweep(ctx)

	_, err = participants.FindByName(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrParticipantNotFound)

	bob, err := participants.FindByName(ctx, "bob")
	require.NoError(t, err)
	assert.LessOrEqual(t, time.Now().UnixMilli()-bob.LastStatus, (10 * time.Second).Milliseconds())

	visible, err := messages.FindVisibleTo(ctx, "bob", 0)
	require.NoError(t, err)

	var leaves []*domain.Message
	for _, message := range visible {
		if message.Text == domain.LeftRoomText {
			leaves = append(leaves, message)
		}
	}
	require.Len(t, leaves, 1)
	assert.Equal(t, "alice", leaves[0].From)
	assert.Equal(t, domain.BroadcastTarget, leaves[0].To)
	assert.Equal(t, domain.MessageTypeStatus, leaves[0].Type)
}

func TestSweepIsQuietWhenNothingIsStale(t *testing.T) {
	svc, participants, messages := newPresenceFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob")
	require.NoError(t, err)

	svc.sweep(ctx)
	svc.sweep(ctx)

	_, err = participants.FindByName(ctx, "bob")
	require.NoError(t, err)

	visible, err := messages.FindVisibleTo(ctx, "bob", 0)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestSweepEmitsOneLeavePerEviction(t *testing.T) {
	svc, participants, messages := newPresenceFixture()
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.Register(ctx, name)
		require.NoError(t, err)
		stale := time.Now().Add(-time.Minute).UnixMilli()
		require.NoError(t, participants.UpdateLastStatus(ctx, name, stale))
	}

	svc.sweep(ctx)
	// A second tick must not announce anyone again.
	svc.sweep(ctx)

	remaining, err := participants.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	visible, err := messages.FindVisibleTo(ctx, "viewer", 0)
	require.NoError(t, err)

	leaves := 0
	for _, message := range visible {
		if message.Text == domain.LeftRoomText {
			leaves++
		}
	}
	assert.Equal(t, 3, leaves)
}
