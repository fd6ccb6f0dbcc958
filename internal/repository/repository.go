package repository

import (
	"goodwill-valuation/config"
	"goodwill-valuation/pkg/cache"

	"gorm.io/gorm"
)

type Repository struct {
	ValuationRepo ValuationRepository
	UnitOfWork    UnitOfWork
}

// NewRepository wires the store-backed repositories. A nil cache disables
// read caching.
func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB) *Repository {
	valuationRepo := NewValuationRepository(db)
	if inmemoryCache != nil {
		valuationRepo = NewCachedValuationRepository(valuationRepo, inmemoryCache, cfg.Cache.DefaultExpiration)
	}

	return &Repository{
		ValuationRepo: valuationRepo,
		UnitOfWork:    NewUnitOfWork(db),
	}
}
