package repository

import (
	"context"
	"errors"

	"goodwill-valuation/internal/model"
	"goodwill-valuation/pkg/apperrors"
	"goodwill-valuation/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ValuationRepository interface {
	List(ctx context.Context, opts ...utils.DBOption) ([]model.Valuation, error)
	Create(ctx context.Context, valuation *model.Valuation, opts ...utils.DBOption) error
	FindByID(ctx context.Context, id uuid.UUID, opts ...utils.DBOption) (*model.Valuation, error)
	Update(ctx context.Context, valuation *model.Valuation, opts ...utils.DBOption) error
	Delete(ctx context.Context, id uuid.UUID, opts ...utils.DBOption) error
}

type valuationRepository struct {
	db *gorm.DB
}

func NewValuationRepository(db *gorm.DB) ValuationRepository {
	return &valuationRepository{db: db}
}

// List returns every record, most recent evaluation first.
func (r *valuationRepository) List(ctx context.Context, opts ...utils.DBOption) ([]model.Valuation, error) {
	var rows []model.ValuationRow
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Order("evaluation_date DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	valuations := make([]model.Valuation, 0, len(rows))
	for i := range rows {
		valuations = append(valuations, *rows[i].ToValuation())
	}
	return valuations, nil
}

func (r *valuationRepository) Create(ctx context.Context, valuation *model.Valuation, opts ...utils.DBOption) error {
	row := model.ToRow(valuation)
	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(row).Error; err != nil {
		return err
	}
	valuation.CreatedAt = row.CreatedAt
	valuation.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *valuationRepository) FindByID(ctx context.Context, id uuid.UUID, opts ...utils.DBOption) (*model.Valuation, error) {
	var row model.ValuationRow
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return row.ToValuation(), nil
}

// Update writes every column of the record, so input columns of a previous
// method are cleared as well.
func (r *valuationRepository) Update(ctx context.Context, valuation *model.Valuation, opts ...utils.DBOption) error {
	row := model.ToRow(valuation)
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(row).
		Select("*").
		Omit("created_at").
		Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	valuation.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *valuationRepository) Delete(ctx context.Context, id uuid.UUID, opts ...utils.DBOption) error {
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Delete(&model.ValuationRow{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
