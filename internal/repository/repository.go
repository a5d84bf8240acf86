package repository

import (
	"context"
	"errors"

	"batepapo-uol/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrNameTaken           = errors.New("participant name already taken")
	ErrMessageNotFound     = errors.New("message not found")
)

type ParticipantRepository interface {
	// Insert fails with ErrNameTaken when a live participant with the
	// same name already exists.
	Insert(ctx context.Context, participant *domain.Participant) error
	FindByName(ctx context.Context, name string) (*domain.Participant, error)
	FindAll(ctx context.Context) ([]*domain.Participant, error)
	UpdateLastStatus(ctx context.Context, name string, lastStatus int64) error
	// DeleteStaleBefore removes every participant whose lastStatus is
	// older than threshold and returns exactly the set it removed, even
	// when it stops early on an error.
	DeleteStaleBefore(ctx context.Context, threshold int64) ([]*domain.Participant, error)
}

type MessageRepository interface {
	// Insert stores the message and fills in its store-assigned ID.
	Insert(ctx context.Context, message *domain.Message) error
	// FindVisibleTo returns, in insertion order, the messages viewer may
	// read. A positive limit selects the tail of that list.
	FindVisibleTo(ctx context.Context, viewer string, limit int64) ([]*domain.Message, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, message *domain.Message) error
}
