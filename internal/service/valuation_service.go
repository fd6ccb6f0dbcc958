package service

import (
	"context"
	"fmt"
	"time"

	"goodwill-valuation/internal/events"
	"goodwill-valuation/internal/model"
	"goodwill-valuation/internal/repository"
	"goodwill-valuation/pkg/logger"
	"goodwill-valuation/pkg/utils"

	"github.com/google/uuid"
)

// EventPublisher receives lifecycle events after a mutation is stored.
// Implementations must not block.
type EventPublisher interface {
	Publish(eventType events.EventType, valuation *model.Valuation)
}

type ValuationService interface {
	List(ctx context.Context) ([]model.Valuation, error)
	Create(ctx context.Context, valuation *model.Valuation) (*model.Valuation, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Valuation, error)
	Update(ctx context.Context, id uuid.UUID, patch model.Patch) (*model.Valuation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type valuationService struct {
	log           *logger.Logger
	valuationRepo repository.ValuationRepository
	unitOfWork    repository.UnitOfWork
	publisher     EventPublisher
	now           func() time.Time
}

func NewValuationService(
	log *logger.Logger,
	valuationRepo repository.ValuationRepository,
	unitOfWork repository.UnitOfWork,
	publisher EventPublisher,
) ValuationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &valuationService{
		log:           log.Named("valuation_service"),
		valuationRepo: valuationRepo,
		unitOfWork:    unitOfWork,
		publisher:     publisher,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *valuationService) List(ctx context.Context) ([]model.Valuation, error) {
	valuations, err := s.valuationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list valuations: %w", err)
	}
	return valuations, nil
}

// Create assigns the identifier and stamps the evaluation date when the
// caller left it out.
func (s *valuationService) Create(ctx context.Context, valuation *model.Valuation) (*model.Valuation, error) {
	if err := valuation.Validate(); err != nil {
		return nil, err
	}

	valuation.ID = uuid.New()
	valuation.Version = 0
	if valuation.EvaluationDate.IsZero() {
		valuation.EvaluationDate = s.now()
	}

	if err := s.valuationRepo.Create(ctx, valuation); err != nil {
		return nil, fmt.Errorf("create valuation: %w", err)
	}

	s.log.DebugContext(ctx, "valuation created",
		logger.StringField("valuation_id", valuation.ID.String()),
		logger.StringField("method", valuation.Method.String()),
	)
	s.publisher.Publish(events.ValuationCreated, valuation)
	return valuation, nil
}

func (s *valuationService) Get(ctx context.Context, id uuid.UUID) (*model.Valuation, error) {
	valuation, err := s.valuationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get valuation %s: %w", id, err)
	}
	return valuation, nil
}

// Update merges patch onto the stored record inside one transaction. Fields
// absent from patch keep their stored values.
func (s *valuationService) Update(ctx context.Context, id uuid.UUID, patch model.Patch) (*model.Valuation, error) {
	var updated *model.Valuation
	err := s.unitOfWork.Run(ctx, func(opts ...utils.DBOption) error {
		current, err := s.valuationRepo.FindByID(ctx, id, opts...)
		if err != nil {
			return err
		}
		if err := current.Apply(patch); err != nil {
			return err
		}
		current.Version++
		if err := s.valuationRepo.Update(ctx, current, opts...); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update valuation %s: %w", id, err)
	}

	s.log.DebugContext(ctx, "valuation updated",
		logger.StringField("valuation_id", id.String()),
		logger.IntField("version", updated.Version),
	)
	s.publisher.Publish(events.ValuationUpdated, updated)
	return updated, nil
}

func (s *valuationService) Delete(ctx context.Context, id uuid.UUID) error {
	valuation, err := s.valuationRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete valuation %s: %w", id, err)
	}
	if err := s.valuationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete valuation %s: %w", id, err)
	}

	s.log.DebugContext(ctx, "valuation deleted", logger.StringField("valuation_id", id.String()))
	s.publisher.Publish(events.ValuationDeleted, valuation)
	return nil
}
