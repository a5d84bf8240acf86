package repository

import (
	"context"
	"sync"

	"batepapo-uol/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InMemoryParticipantRepository struct {
	mu           sync.RWMutex
	participants map[string]*domain.Participant
}

func NewInMemoryParticipantRepository() *InMemoryParticipantRepository {
	return &InMemoryParticipantRepository{
		participants: make(map[string]*domain.Participant),
	}
}

func (r *InMemoryParticipantRepository) Insert(ctx context.Context, participant *domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[participant.Name]; ok {
		return ErrNameTaken
	}

	stored := *participant
	r.participants[participant.Name] = &stored
	return nil
}

func (r *InMemoryParticipantRepository) FindByName(ctx context.Context, name string) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	participant, ok := r.participants[name]
	if !ok {
		return nil, ErrParticipantNotFound
	}

	found := *participant
	return &found, nil
}

func (r *InMemoryParticipantRepository) FindAll(ctx context.Context) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Participant, 0, len(r.participants))
	for _, participant := range r.participants {
		found := *participant
		result = append(result, &found)
	}
	return result, nil
}

func (r *InMemoryParticipantRepository) UpdateLastStatus(ctx context.Context, name string, lastStatus int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.participants[name]
	if !ok {
		return ErrParticipantNotFound
	}

	participant.LastStatus = lastStatus
	return nil
}

func (r *InMemoryParticipantRepository) DeleteStaleBefore(ctx context.Context, threshold int64) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := make([]*domain.Participant, 0)
	for name, participant := range r.participants {
		if participant.LastStatus < threshold {
			removed := *participant
			evicted = append(evicted, &removed)
			delete(r.participants, name)
		}
	}
	return evicted, nil
}

type InMemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewInMemoryMessageRepository() *InMemoryMessageRepository {
	return &InMemoryMessageRepository{
		messages: make([]*domain.Message, 0),
	}
}

func (r *InMemoryMessageRepository) Insert(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}

	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *InMemoryMessageRepository) FindVisibleTo(ctx context.Context, viewer string, limit int64) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	visible := make([]*domain.Message, 0, len(r.messages))
	for _, message := range r.messages {
		if message.VisibleTo(viewer) {
			found := *message
			visible = append(visible, &found)
		}
	}

	if limit > 0 && int64(len(visible)) > limit {
		visible = visible[int64(len(visible))-limit:]
	}
	return visible, nil
}

func (r *InMemoryMessageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, message := range r.messages {
		if message.ID == id {
			found := *message
			return &found, nil
		}
	}
	return nil, ErrMessageNotFound
}

func (r *InMemoryMessageRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, message := range r.messages {
		if message.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return ErrMessageNotFound
}

func (r *InMemoryMessageRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.messages {
		if stored.ID == id {
			updated := *message
			updated.ID = id
			r.messages[i] = &updated
			return nil
		}
	}
	return ErrMessageNotFound
}
