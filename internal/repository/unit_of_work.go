package repository

import (
	"context"
	"fmt"

	"goodwill-valuation/pkg/utils"

	"gorm.io/gorm"
)

type UnitOfWork interface {
	Run(ctx context.Context, fn func(opts ...utils.DBOption) error) error
}

type unitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &unitOfWork{
		db: db,
	}
}

// Run executes fn inside one transaction; repositories join it through the
// options passed to fn. Any error or panic rolls back.
func (u *unitOfWork) Run(ctx context.Context, fn func(opts ...utils.DBOption) error) (err error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback()
		} else {
			if commitErr := tx.Commit().Error; commitErr != nil {
				err = fmt.Errorf("commit failed: %w", commitErr)
			}
		}
	}()

	err = fn(utils.WithTx(tx))
	return
}
