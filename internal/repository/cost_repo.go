package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type CostRepository interface {
	CreateTx(tx *gorm.DB, c *model.Cost) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cost, error)
	SaveTx(tx *gorm.DB, c *model.Cost) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, page, limit int, search string) ([]model.Cost, int64, error)
	ListAll(ctx context.Context) ([]model.Cost, error)
	// SumToday totals today's expenses for the list header.
	SumToday(ctx context.Context) (decimal.Decimal, error)
	DB() *gorm.DB
}

type costRepo struct{ db *gorm.DB }

func NewCostRepository(db *gorm.DB) CostRepository { return &costRepo{db: db} }

func (r *costRepo) CreateTx(tx *gorm.DB, c *model.Cost) error {
	return tx.Create(c).Error
}

func (r *costRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cost, error) {
	var c model.Cost
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *costRepo) SaveTx(tx *gorm.DB, c *model.Cost) error {
	return tx.Save(c).Error
}

func (r *costRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Cost{}, "id = ?", id).Error
}

func (r *costRepo) List(ctx context.Context, page, limit int, search string) ([]model.Cost, int64, error) {
	var costs []model.Cost
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cost{})
	if search != "" {
		q = q.Where("sellername ILIKE ?", "%"+search+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&costs).Error
	return costs, total, err
}

func (r *costRepo) ListAll(ctx context.Context) ([]model.Cost, error) {
	var costs []model.Cost
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&costs).Error
	return costs, err
}

func (r *costRepo) SumToday(ctx context.Context) (decimal.Decimal, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Cost{}).
		Select("SUM(amount)").Where("created_at >= ?", today).Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}

func (r *costRepo) DB() *gorm.DB { return r.db }
