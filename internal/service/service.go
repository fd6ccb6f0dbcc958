package service

import (
	"goodwill-valuation/internal/repository"
	"goodwill-valuation/pkg/logger"
)

type Service struct {
	ValuationService ValuationService
}

func NewService(
	log *logger.Logger,
	repo *repository.Repository,
	publisher EventPublisher,
) *Service {
	return &Service{
		ValuationService: NewValuationService(log, repo.ValuationRepo, repo.UnitOfWork, publisher),
	}
}
