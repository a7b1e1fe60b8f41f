package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadcoderr/smartdokonv3-server/internal/apierror"
	"github.com/muhammadcoderr/smartdokonv3-server/internal/dto"
)

func newProductSvc(repo *memProductRepo) ProductService {
	return NewProductService(repo, NewInventoryService(repo), nil)
}

func TestCreateProduct(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductSvc(repo)

	p, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Cola",
		SellingPrice: decimal.NewFromInt(6000),
		Available:    12,
		Barcode:      "5449000000996",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)

	found, err := svc.GetByBarcode(context.Background(), "5449000000996")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
}

func TestCreateProductDuplicateBarcode(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductSvc(repo)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{Name: "A", Barcode: "123"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateProductRequest{Name: "B", Barcode: "123"})
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeConflict, apiErr.Code)
}

func TestUpdateProductPartialFields(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductSvc(repo)

	p, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Cola",
		SellingPrice: decimal.NewFromInt(6000),
		Available:    12,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(6500)
	updated, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		SellingPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "6500", updated.SellingPrice.String())
	assert.Equal(t, "Cola", updated.Name)
	assert.Equal(t, 12, updated.Available)

	// Zero is a valid explicit stock value via the pointer field.
	zero := 0
	updated, err = svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Available: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Available)
}

func TestAdjustStockManualCorrection(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductSvc(repo)

	p, err := svc.Create(context.Background(), dto.CreateProductRequest{Name: "Cola", Available: 3})
	require.NoError(t, err)

	after, err := svc.AdjustStock(context.Background(), p.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Available)

	after, err = svc.AdjustStock(context.Background(), p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, after.Available)
}

func TestGetUnknownProduct(t *testing.T) {
	svc := newProductSvc(newMemProductRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierror.CodeNotFound, apiErr.Code)
}
