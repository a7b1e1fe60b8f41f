package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
)

type SellerRepository interface {
	Create(ctx context.Context, s *model.Seller) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error)
	FindByLogin(ctx context.Context, login string) (*model.Seller, error)
	List(ctx context.Context) ([]model.Seller, error)
	// ListSupervisors returns sellers allowed to accept handovers.
	ListSupervisors(ctx context.Context) ([]model.Seller, error)
	Update(ctx context.Context, s *model.Seller) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sellerRepo struct{ db *gorm.DB }

func NewSellerRepository(db *gorm.DB) SellerRepository { return &sellerRepo{db: db} }

func (r *sellerRepo) Create(ctx context.Context, s *model.Seller) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sellerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Seller, error) {
	var s model.Seller
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sellerRepo) FindByLogin(ctx context.Context, login string) (*model.Seller, error) {
	var s model.Seller
	if err := r.db.WithContext(ctx).First(&s, "login = ?", login).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sellerRepo) List(ctx context.Context) ([]model.Seller, error) {
	var ss []model.Seller
	err := r.db.WithContext(ctx).Order("firstname ASC").Find(&ss).Error
	return ss, err
}

func (r *sellerRepo) ListSupervisors(ctx context.Context) ([]model.Seller, error) {
	var ss []model.Seller
	err := r.db.WithContext(ctx).Where("role = ?", model.RoleAdmin).
		Order("firstname ASC").Find(&ss).Error
	return ss, err
}

func (r *sellerRepo) Update(ctx context.Context, s *model.Seller) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sellerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Seller{}, "id = ?", id).Error
}
