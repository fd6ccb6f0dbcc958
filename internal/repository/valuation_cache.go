package repository

import (
	"context"
	"fmt"
	"time"

	"goodwill-valuation/internal/model"
	"goodwill-valuation/pkg/cache"
	"goodwill-valuation/pkg/common"
	"goodwill-valuation/pkg/utils"

	"github.com/google/uuid"
)

// cachedValuationRepository serves FindByID from memory. Lookups that carry
// DB options (transactions) always reach the store.
type cachedValuationRepository struct {
	ValuationRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedValuationRepository(inner ValuationRepository, c cache.Cache, ttl time.Duration) ValuationRepository {
	return &cachedValuationRepository{
		ValuationRepository: inner,
		cache:               c,
		ttl:                 ttl,
	}
}

func valuationKey(id uuid.UUID) string {
	return fmt.Sprintf(common.KEY_VALUATION, id)
}

func (r *cachedValuationRepository) FindByID(ctx context.Context, id uuid.UUID, opts ...utils.DBOption) (*model.Valuation, error) {
	if len(opts) > 0 {
		return r.ValuationRepository.FindByID(ctx, id, opts...)
	}

	// the flat row is cached so every hit rebuilds a private copy
	if cached, ok := cache.GetFromCache[model.ValuationRow](r.cache, valuationKey(id)); ok {
		return cached.ToValuation(), nil
	}

	valuation, err := r.ValuationRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(valuationKey(id), *model.ToRow(valuation), r.ttl)
	return valuation, nil
}

func (r *cachedValuationRepository) Update(ctx context.Context, valuation *model.Valuation, opts ...utils.DBOption) error {
	defer r.cache.Delete(valuationKey(valuation.ID))
	return r.ValuationRepository.Update(ctx, valuation, opts...)
}

func (r *cachedValuationRepository) Delete(ctx context.Context, id uuid.UUID, opts ...utils.DBOption) error {
	defer r.cache.Delete(valuationKey(id))
	return r.ValuationRepository.Delete(ctx, id, opts...)
}
