package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type ReturnedRepository interface {
	CreateTx(tx *gorm.DB, ret *model.Returned) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Returned, error)
	List(ctx context.Context) ([]model.Returned, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type returnedRepo struct{ db *gorm.DB }

func NewReturnedRepository(db *gorm.DB) ReturnedRepository { return &returnedRepo{db: db} }

func (r *returnedRepo) CreateTx(tx *gorm.DB, ret *model.Returned) error {
	return tx.Create(ret).Error
}

func (r *returnedRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Returned, error) {
	var ret model.Returned
	if err := r.db.WithContext(ctx).First(&ret, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *returnedRepo) List(ctx context.Context) ([]model.Returned, error) {
	var rets []model.Returned
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rets).Error
	return rets, err
}

func (r *returnedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Returned{}, "id = ?", id).Error
}

func (r *returnedRepo) DB() *gorm.DB { return r.db }
