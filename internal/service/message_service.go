package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"batepapo-uol/internal/domain"
	"batepapo-uol/internal/repository"
	"batepapo-uol/internal/sanitize"
	"batepapo-uol/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageService struct {
	messages     repository.MessageRepository
	participants repository.ParticipantRepository
	log          *slog.Logger
}

func NewMessageService(
	messages repository.MessageRepository,
	participants repository.ParticipantRepository,
	log *slog.Logger,
) *MessageService {
	if log == nil {
		log = slog.Default()
	}
	return &MessageService{
		messages:     messages,
		participants: participants,
		log:          log,
	}
}

func (s *MessageService) Send(ctx context.Context, from, to, text, messageType string) (*domain.Message, error) {
	const op = "service.message.send"

	from = sanitize.Clean(from)
	to = sanitize.Clean(to)
	text = sanitize.Clean(text)
	messageType = sanitize.Clean(messageType)

	if verr := validation.Check(validation.SendMessageRequest{To: to, Text: text, Type: messageType}); verr != nil {
		return nil, verr
	}

	if err := s.ensureLive(ctx, from); err != nil {
		return nil, err
	}

	message := domain.NewMessage(from, to, text, domain.MessageType(messageType), time.Now())
	if err := s.messages.Insert(ctx, message); err != nil {
		return nil, err
	}

	s.log.Info("message sent",
		slog.String("op", op),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("type", messageType),
	)
	return message, nil
}

func (s *MessageService) List(ctx context.Context, viewer string, limit *int64) ([]*domain.Message, error) {
	if verr := validation.Check(validation.ListMessagesQuery{Limit: limit}); verr != nil {
		return nil, verr
	}

	viewer = sanitize.Clean(viewer)

	var tail int64
	if limit != nil {
		tail = *limit
	}
	return s.messages.FindVisibleTo(ctx, viewer, tail)
}

func (s *MessageService) Edit(ctx context.Context, viewer, id, to, text, messageType string) (*domain.Message, error) {
	const op = "service.message.edit"

	viewer = sanitize.Clean(viewer)
	to = sanitize.Clean(to)
	text = sanitize.Clean(text)
	messageType = sanitize.Clean(messageType)

	if verr := validation.Check(validation.EditMessageRequest{To: to, Text: text, Type: messageType}); verr != nil {
		return nil, verr
	}

	if err := s.ensureLive(ctx, viewer); err != nil {
		return nil, err
	}

	message, err := s.lookupOwned(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if to != "" {
		message.To = to
	}
	if text != "" {
		message.Text = text
	}
	if messageType != "" {
		message.Type = domain.MessageType(messageType)
	}
	message.From = viewer
	message.Time = time.Now().Format(domain.TimeLayout)

	if err := s.messages.UpdateByID(ctx, message.ID, message); err != nil {
		return nil, err
	}

	s.log.Info("message edited", slog.String("op", op), slog.String("id", id), slog.String("from", viewer))
	return message, nil
}

func (s *MessageService) Delete(ctx context.Context, viewer, id string) error {
	const op = "service.message.delete"

	viewer = sanitize.Clean(viewer)

	message, err := s.lookupOwned(ctx, viewer, id)
	if err != nil {
		return err
	}

	if err := s.messages.DeleteByID(ctx, message.ID); err != nil {
		return err
	}

	s.log.Info("message deleted", slog.String("op", op), slog.String("id", id), slog.String("from", viewer))
	return nil
}

// lookupOwned resolves the identifier and checks ownership. Malformed
// identifiers surface as not-found, same as unknown ones.
func (s *MessageService) lookupOwned(ctx context.Context, viewer, id string) (*domain.Message, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrMessageNotFound
	}

	message, err := s.messages.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}

	if message.From != viewer {
		return nil, ErrNotOwner
	}
	return message, nil
}

func (s *MessageService) ensureLive(ctx context.Context, name string) error {
	_, err := s.participants.FindByName(ctx, name)
	if errors.Is(err, repository.ErrParticipantNotFound) {
		return ErrNotRegistered
	}
	return err
}
