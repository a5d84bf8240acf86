package service

import (
	"context"
	"errors"

	"batepapo-uol/internal/domain"
)

var (
	// ErrNotRegistered marks a sender that is not currently in the room.
	ErrNotRegistered = errors.New("participant is not in the room")
	// ErrNotOwner marks a mutation attempted by someone other than the
	// message author.
	ErrNotOwner = errors.New("message belongs to another participant")
)

type PresenceInteractor interface {
	Register(ctx context.Context, name string) (*domain.Participant, error)
	Ping(ctx context.Context, name string) error
	ListParticipants(ctx context.Context) ([]*domain.Participant, error)
}

type MessageInteractor interface {
	Send(ctx context.Context, from, to, text, messageType string) (*domain.Message, error)
	List(ctx context.Context, viewer string, limit *int64) ([]*domain.Message, error)
	Edit(ctx context.Context, viewer, id, to, text, messageType string) (*domain.Message, error)
	Delete(ctx context.Context, viewer, id string) error
}
