package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appSourcing "github.com/supplylink/backend/internal/application/sourcing"
	"github.com/supplylink/backend/internal/domain/shared"
	"github.com/supplylink/backend/internal/domain/sourcing"
	"github.com/supplylink/backend/internal/interfaces/http/dto"
	"github.com/supplylink/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// MockProductLinkRepository is a mock implementation of sourcing.ProductLinkRepository
type MockProductLinkRepository struct {
	mock.Mock
}

var _ sourcing.ProductLinkRepository = (*MockProductLinkRepository)(nil)

func (m *MockProductLinkRepository) FindByPair(ctx context.Context, supplierID, productID uint) (*sourcing.ProductLink, error) {
	args := m.Called(ctx, supplierID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sourcing.ProductLink), args.Error(1)
}

func (m *MockProductLinkRepository) Save(ctx context.Context, link *sourcing.ProductLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockProductLinkRepository) DeactivateAllForSupplier(ctx context.Context, supplierID uint) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

func (m *MockProductLinkRepository) ProductsForSupplier(ctx context.Context, supplierID uint) ([]sourcing.LinkedProduct, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sourcing.LinkedProduct), args.Error(1)
}

func (m *MockProductLinkRepository) SuppliersForProduct(ctx context.Context, productID uint) ([]sourcing.LinkedSupplier, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sourcing.LinkedSupplier), args.Error(1)
}

func (m *MockProductLinkRepository) AvailableProductsForSupplier(ctx context.Context, supplierID uint) ([]sourcing.AvailableProduct, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sourcing.AvailableProduct), args.Error(1)
}

func (m *MockProductLinkRepository) AvailableSuppliersForProduct(ctx context.Context, productID uint) ([]sourcing.AvailableSupplier, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sourcing.AvailableSupplier), args.Error(1)
}

// newSourcingRouter mounts the sourcing routes the way the server does
func newSourcingRouter(repo *MockProductLinkRepository) *gin.Engine {
	middleware.SetupValidator()

	handler := NewSourcingHandler(appSourcing.NewLinkService(repo, zap.NewNop()))

	engine := gin.New()
	api := engine.Group("/api/v1/sourcing")
	api.POST("/links", handler.Link)
	api.DELETE("/links/:supplier_id/:product_id", handler.Unlink)
	api.GET("/suppliers/:supplier_id/products", handler.ProductsForSupplier)
	api.GET("/suppliers/:supplier_id/available-products", handler.AvailableProductsForSupplier)
	api.GET("/products/:product_id/suppliers", handler.SuppliersForProduct)
	api.GET("/products/:product_id/available-suppliers", handler.AvailableSuppliersForProduct)
	api.PUT("/suppliers/:supplier_id/links", handler.ReplaceLinks)
	return engine
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSourcingHandler_Link(t *testing.T) {
	t.Run("links a new pair", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		repo.On("FindByPair", mock.Anything, uint(1), uint(2)).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*sourcing.ProductLink")).Return(nil)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "POST", "/api/v1/sourcing/links", gin.H{
			"supplier_id":    1,
			"product_id":     2,
			"supplier_price": "3.50",
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("reactivates an existing pair", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		existing, err := sourcing.NewProductLink(1, 2, decimal.NullDecimal{})
		require.NoError(t, err)
		existing.Retire()

		repo.On("FindByPair", mock.Anything, uint(1), uint(2)).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "POST", "/api/v1/sourcing/links", gin.H{
			"supplier_id": 1,
			"product_id":  2,
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, existing.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a missing product id", func(t *testing.T) {
		repo := new(MockProductLinkRepository)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "POST", "/api/v1/sourcing/links", gin.H{
			"supplier_id": 1,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		repo := new(MockProductLinkRepository)

		engine := newSourcingRouter(repo)
		req := httptest.NewRequest("POST", "/api/v1/sourcing/links", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "FindByPair")
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		repo := new(MockProductLinkRepository)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "POST", "/api/v1/sourcing/links", gin.H{
			"supplier_id":    1,
			"product_id":     2,
			"supplier_price": "-1.00",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		repo.AssertNotCalled(t, "FindByPair")
	})

	t.Run("maps a missing counterpart to 409", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		repo.On("FindByPair", mock.Anything, uint(1), uint(999)).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*sourcing.ProductLink")).Return(shared.ErrConstraintViolation)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "POST", "/api/v1/sourcing/links", gin.H{
			"supplier_id": 1,
			"product_id":  999,
		})

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeConstraintViolation, resp.Error.Code)
		repo.AssertExpectations(t)
	})
}

func TestSourcingHandler_Unlink(t *testing.T) {
	t.Run("retires an existing link", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		existing, err := sourcing.NewProductLink(1, 2, decimal.NullDecimal{})
		require.NoError(t, err)

		repo.On("FindByPair", mock.Anything, uint(1), uint(2)).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "DELETE", "/api/v1/sourcing/links/1/2", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, existing.Active)
		repo.AssertExpectations(t)
	})

	t.Run("returns 204 for a pair that was never linked", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		repo.On("FindByPair", mock.Anything, uint(5), uint(9)).Return(nil, shared.ErrNotFound)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "DELETE", "/api/v1/sourcing/links/5/9", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a non-numeric supplier id", func(t *testing.T) {
		repo := new(MockProductLinkRepository)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "DELETE", "/api/v1/sourcing/links/abc/2", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "FindByPair")
	})
}

func TestSourcingHandler_ProductsForSupplier(t *testing.T) {
	t.Run("lists linked products with meta total", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		price := decimal.NullDecimal{Decimal: decimal.RequireFromString("3.50"), Valid: true}
		repo.On("ProductsForSupplier", mock.Anything, uint(1)).Return([]sourcing.LinkedProduct{
			{ProductID: 2, Name: "Bread 500g", LinkedAt: time.Now(), Active: true},
			{ProductID: 3, Name: "Milk 1L", SupplierPrice: price, LinkedAt: time.Now(), Active: true},
		}, nil)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "GET", "/api/v1/sourcing/suppliers/1/products", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)

		rows, ok := resp.Data.([]any)
		require.True(t, ok)
		require.Len(t, rows, 2)
		first, ok := rows[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Bread 500g", first["name"])
		assert.Nil(t, first["supplier_price"])
	})

	t.Run("returns an empty list for a supplier without links", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		repo.On("ProductsForSupplier", mock.Anything, uint(7)).Return([]sourcing.LinkedProduct{}, nil)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "GET", "/api/v1/sourcing/suppliers/7/products", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(0), resp.Meta.Total)
	})
}

func TestSourcingHandler_SuppliersForProduct(t *testing.T) {
	repo := new(MockProductLinkRepository)
	repo.On("SuppliersForProduct", mock.Anything, uint(3)).Return([]sourcing.LinkedSupplier{
		{SupplierID: 1, Name: "Acme Foods", LinkedAt: time.Now(), Active: true},
	}, nil)

	engine := newSourcingRouter(repo)
	w := performJSON(t, engine, "GET", "/api/v1/sourcing/products/3/suppliers", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestSourcingHandler_AvailableProductsForSupplier(t *testing.T) {
	repo := new(MockProductLinkRepository)
	repo.On("AvailableProductsForSupplier", mock.Anything, uint(1)).Return([]sourcing.AvailableProduct{
		{ProductID: 4, Name: "Cheese 200g"},
	}, nil)

	engine := newSourcingRouter(repo)
	w := performJSON(t, engine, "GET", "/api/v1/sourcing/suppliers/1/available-products", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestSourcingHandler_AvailableSuppliersForProduct(t *testing.T) {
	repo := new(MockProductLinkRepository)
	repo.On("AvailableSuppliersForProduct", mock.Anything, uint(3)).Return([]sourcing.AvailableSupplier{
		{SupplierID: 2, Name: "Zenith Dairy"},
	}, nil)

	engine := newSourcingRouter(repo)
	w := performJSON(t, engine, "GET", "/api/v1/sourcing/products/3/available-suppliers", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestSourcingHandler_ReplaceLinks(t *testing.T) {
	t.Run("replaces the active set", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		repo.On("DeactivateAllForSupplier", mock.Anything, uint(1)).Return(nil)
		repo.On("FindByPair", mock.Anything, uint(1), uint(2)).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*sourcing.ProductLink")).Return(nil)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "PUT", "/api/v1/sourcing/suppliers/1/links", gin.H{
			"links": []gin.H{
				{"product_id": 2, "supplier_price": "3.50"},
			},
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("an empty list deactivates everything", func(t *testing.T) {
		repo := new(MockProductLinkRepository)
		repo.On("DeactivateAllForSupplier", mock.Anything, uint(1)).Return(nil)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "PUT", "/api/v1/sourcing/suppliers/1/links", gin.H{
			"links": []gin.H{},
		})

		assert.Equal(t, http.StatusNoContent, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a non-numeric supplier id", func(t *testing.T) {
		repo := new(MockProductLinkRepository)

		engine := newSourcingRouter(repo)
		w := performJSON(t, engine, "PUT", "/api/v1/sourcing/suppliers/abc/links", gin.H{
			"links": []gin.H{},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "DeactivateAllForSupplier")
	})
}
