package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
)

// ReturnedService records product returns. Reusable returns restock the
// product by name, creating it when unknown; defective returns are recorded
// without touching inventory.
type ReturnedService interface {
	Create(ctx context.Context, req dto.CreateReturnRequest) (*model.Returned, error)
	List(ctx context.Context) ([]model.Returned, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type returnedService struct {
	repo     repository.ReturnedRepository
	products repository.ProductRepository
}

func NewReturnedService(
	repo repository.ReturnedRepository,
	products repository.ProductRepository,
) ReturnedService {
	return &returnedService{repo: repo, products: products}
}

func (s *returnedService) Create(ctx context.Context, req dto.CreateReturnRequest) (*model.Returned, error) {
	condition := req.Condition
	if condition == "" {
		condition = model.ReturnReusable
	}
	if condition != model.ReturnReusable && condition != model.ReturnDefective {
		return nil, apierror.Validation("condition must be reusable or defective")
	}

	ret := &model.Returned{
		Name:       req.Name,
		ClientName: req.ClientName,
		SellerName: req.SellerName,
		Quantity:   req.Quantity,
		Condition:  condition,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if condition == model.ReturnReusable {
			p, err := s.products.FindByNameTx(tx, req.Name)
			switch {
			case err == nil:
				if _, err := s.products.AdjustStockTx(tx, p.ID, req.Quantity); err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := s.products.CreateTx(tx, &model.Product{
					Name:       req.Name,
					SellerName: req.SellerName,
					Available:  req.Quantity,
				}); err != nil {
					return err
				}
			default:
				return err
			}
		}
		return s.repo.CreateTx(tx, ret)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ret, nil
}

func (s *returnedService) List(ctx context.Context) ([]model.Returned, error) {
	return s.repo.List(ctx)
}

func (s *returnedService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("return not found")
	}
	return s.repo.Delete(ctx, id)
}
