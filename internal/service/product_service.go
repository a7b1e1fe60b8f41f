package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/model"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/repository"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/worker"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustStock applies a signed delta outside a sale (stock correction,
	// manual restock) and fires crossing alerts like any other adjustment.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error)
}

type productService struct {
	repo       repository.ProductRepository
	inventory  InventoryService
	dispatcher *worker.Dispatcher
}

func NewProductService(
	repo repository.ProductRepository,
	inventory InventoryService,
	dispatcher *worker.Dispatcher,
) ProductService {
	return &productService{repo: repo, inventory: inventory, dispatcher: dispatcher}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	if req.Barcode != "" {
		if existing, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil && existing != nil {
			return nil, apierror.Conflict("barcode already in use")
		}
	}
	p := &model.Product{
		Name:         req.Name,
		SellerName:   req.SellerName,
		ArrivalPrice: req.ArrivalPrice,
		SellingPrice: req.SellingPrice,
		Available:    req.Available,
		Category:     req.Category,
		Barcode:      req.Barcode,
		Type:         req.Type,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	return p, nil
}

func (s *productService) GetByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	p, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Data:       products,
		TotalPages: totalPages(total, filter.Limit),
		Page:       filter.Page,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.SellerName != "" {
		p.SellerName = req.SellerName
	}
	if req.ArrivalPrice != nil {
		p.ArrivalPrice = *req.ArrivalPrice
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
	}
	if req.Available != nil {
		p.Available = *req.Available
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.Barcode != "" {
		p.Barcode = req.Barcode
	}
	if req.Type != "" {
		p.Type = req.Type
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("product not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueNotification(ctx, worker.Notification{
			Event:       worker.EventProductDeleted,
			ProductName: p.Name,
			Quantity:    p.Available,
		})
	}
	return nil
}

func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("product not found")
	}

	var alerts []worker.Notification
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		_, a, err := s.inventory.AdjustStockTx(tx, id, p.Name, delta)
		alerts = a
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		for _, a := range alerts {
			_ = s.dispatcher.EnqueueNotification(ctx, a)
		}
	}
	return s.repo.FindByID(ctx, id)
}
