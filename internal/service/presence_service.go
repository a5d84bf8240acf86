package service

import (
	"context"
	"log/slog"
	"time"

	"batepapo-uol/internal/domain"
	"batepapo-uol/internal/repository"
	"batepapo-uol/internal/sanitize"
	"batepapo-uol/internal/validation"
	"batepapo-uol/lib/logger/sl"
)

// PresenceService owns the participant lifecycle: registration, pings
// and the periodic sweep that evicts anyone whose last ping fell
// outside the liveness window.
type PresenceService struct {
	participants repository.ParticipantRepository
	messages     repository.MessageRepository
	log          *slog.Logger
	window       time.Duration
	period       time.Duration
}

func NewPresenceService(
	participants repository.ParticipantRepository,
	messages repository.MessageRepository,
	log *slog.Logger,
	window time.Duration,
	period time.Duration,
) *PresenceService {
	if log == nil {
		log = slog.Default()
	}
	return &PresenceService{
		participants: participants,
		messages:     messages,
		log:          log,
		window:       window,
		period:       period,
	}
}

func (s *PresenceService) Register(ctx context.Context, name string) (*domain.Participant, error) {
	const op = "service.presence.register"
	log := s.log.With(slog.String("op", op))

	name = sanitize.Clean(name)
	if verr := validation.Check(validation.RegisterRequest{Name: name}); verr != nil {
		return nil, verr
	}

	// Uniqueness is enforced by the store's unique index on name, so two
	// concurrent registrations cannot both get past this insert.
	participant := domain.NewParticipant(name, time.Now())
	if err := s.participants.Insert(ctx, participant); err != nil {
		return nil, err
	}

	joined := domain.NewStatusMessage(name, domain.JoinedRoomText, time.Now())
	if err := s.messages.Insert(ctx, joined); err != nil {
		log.Warn("join notice failed, retrying", sl.Err(err))
		if err := s.messages.Insert(ctx, joined); err != nil {
			// Best-effort notification; the participant stays registered.
			log.Error("join notice dropped", slog.String("name", name), sl.Err(err))
		}
	}

	log.Info("participant registered", slog.String("name", name))
	return participant, nil
}

func (s *PresenceService) Ping(ctx context.Context, name string) error {
	name = sanitize.Clean(name)
	if name == "" {
		return repository.ErrParticipantNotFound
	}
	return s.participants.UpdateLastStatus(ctx, name, time.Now().UnixMilli())
}

func (s *PresenceService) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	return s.participants.FindAll(ctx)
}

// Run sweeps on a fixed cadence until ctx is cancelled.
func (s *PresenceService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.log.Info("presence sweeper started",
		slog.Duration("period", s.period),
		slog.Duration("window", s.window),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("presence sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep evicts every participant whose last ping is older than the
// liveness window and emits one leave notice per evicted participant.
// Errors are logged and retried on the next tick.
func (s *PresenceService) sweep(ctx context.Context) {
	const op = "service.presence.sweep"
	log := s.log.With(slog.String("op", op))

	threshold := time.Now().Add(-s.window).UnixMilli()
	evicted, err := s.participants.DeleteStaleBefore(ctx, threshold)
	if err != nil {
		log.Error("sweep failed", sl.Err(err))
	}

	// Notices go out only for participants this sweep actually removed,
	// including the ones removed before an error cut the sweep short.
	for _, participant := range evicted {
		left := domain.NewStatusMessage(participant.Name, domain.LeftRoomText, time.Now())
		if err := s.messages.Insert(ctx, left); err != nil {
			log.Error("leave notice dropped", slog.String("name", participant.Name), sl.Err(err))
			continue
		}
		log.Info("participant evicted", slog.String("name", participant.Name))
	}
}
