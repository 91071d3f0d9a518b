package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	cerrors "github.com/prodcat/catalog/internal/errors"
	"github.com/prodcat/catalog/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	result   store.SearchResult
	error    error

	findByIDErr  error
	createCalls  int
	updateCalls  int
	deleteCalls  int
	searchedSpec store.SearchSpec
}

func (m *mockProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	return m.products, m.error
}

func (m *mockProductStore) Search(_ context.Context, spec store.SearchSpec) (*store.SearchResult, error) {
	m.searchedSpec = spec
	if m.error != nil {
		return nil, m.error
	}
	return &m.result, nil
}

func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*store.Product, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	return &m.product, m.error
}

func (m *mockProductStore) Create(_ context.Context, _ string, _ float64, _ int32) (*store.Product, error) {
	m.createCalls++
	return &m.product, m.error
}

func (m *mockProductStore) Update(_ context.Context, _ int64, _ string, _ float64, _ int32) (*store.Product, error) {
	m.updateCalls++
	return &m.product, m.error
}

func (m *mockProductStore) Delete(_ context.Context, _ int64) error {
	m.deleteCalls++
	return m.error
}

func Test_CatalogService_FindByID(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   int64
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: 7, Name: "Widget", Price: 9.99, Stock: 5},
			},
			productID: 7,
			expected:  &ProductDto{ID: 7, Name: "Widget", Price: 9.99, Stock: 5},
		},
		{
			name: "Error - product not found",
			mockStore: &mockProductStore{
				findByIDErr: cerrors.ErrProductNotFound,
			},
			productID:   42,
			expectError: cerrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_CatalogService_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name         string
		mockStore    *mockProductStore
		expectedList []ProductDto
		expectError  error
	}{
		{
			name: "Success - products found",
			mockStore: &mockProductStore{
				products: []store.Product{{ID: 1, Name: "Widget", Price: 9.99, Stock: 5}},
			},
			expectedList: []ProductDto{{ID: 1, Name: "Widget", Price: 9.99, Stock: 5}},
		},
		{
			name: "Success - no products",
			mockStore: &mockProductStore{
				products: []store.Product{},
			},
			expectedList: []ProductDto{},
		},
		{
			name: "Error - store error",
			mockStore: &mockProductStore{
				error: ErrStoreError,
			},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindAll(context.Background())
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedList, found)
		})
	}
}

func Test_CatalogService_Search(t *testing.T) {
	// given
	minPrice := 2.5
	maxStock := int32(50)
	mockStore := &mockProductStore{
		result: store.SearchResult{
			Products:   []store.Product{{ID: 1, Name: "Widget", Price: 9.99, Stock: 5}},
			Total:      11,
			TotalPages: 2,
			Page:       2,
			Limit:      10,
		},
	}
	service := NewService(mockStore)
	// when
	result, err := service.Search(context.Background(), SearchRequest{
		Name:     "wid",
		MinPrice: &minPrice,
		MaxStock: &maxStock,
		Page:     2,
		Limit:    10,
		SortBy:   "stock",
		SortDir:  "desc",
	})
	// then
	require.NoError(t, err)
	assert.Equal(t, &SearchResultDto{
		Products:   []ProductDto{{ID: 1, Name: "Widget", Price: 9.99, Stock: 5}},
		Total:      11,
		TotalPages: 2,
		Page:       2,
		Limit:      10,
	}, result)
	// the request reaches the store unchanged
	assert.Equal(t, store.SearchSpec{
		Name:     "wid",
		MinPrice: &minPrice,
		MaxStock: &maxStock,
		Page:     2,
		Limit:    10,
		SortBy:   "stock",
		SortDir:  "desc",
	}, mockStore.searchedSpec)
}

func Test_CatalogService_Create(t *testing.T) {
	testCases := []struct {
		name            string
		payload         ProductCreateDto
		expectValidfail string
	}{
		{
			name:    "Success - valid payload",
			payload: ProductCreateDto{Name: "Widget", Price: 9.99, Stock: 5},
		},
		{
			name:            "Error - blank name",
			payload:         ProductCreateDto{Name: "   ", Price: 9.99, Stock: 5},
			expectValidfail: "Product name is required",
		},
		{
			name:            "Error - zero price",
			payload:         ProductCreateDto{Name: "X", Price: 0, Stock: 5},
			expectValidfail: "Price must be positive",
		},
		{
			name:            "Error - negative stock",
			payload:         ProductCreateDto{Name: "X", Price: 1, Stock: -1},
			expectValidfail: "Stock cannot be negative",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mockStore := &mockProductStore{
				product: store.Product{ID: 1, Name: tc.payload.Name, Price: tc.payload.Price, Stock: tc.payload.Stock},
			}
			service := NewService(mockStore)
			// when
			created, err := service.Create(context.Background(), tc.payload)
			// then
			if tc.expectValidfail != "" {
				var ve *cerrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.expectValidfail, ve.Message)
				assert.Nil(t, created)
				// validation fails before the datastore is touched
				assert.Zero(t, mockStore.createCalls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), created.ID)
			assert.Equal(t, 1, mockStore.createCalls)
		})
	}
}

func Test_CatalogService_Update(t *testing.T) {
	// given
	mockStore := &mockProductStore{}
	service := NewService(mockStore)
	// when: invalid payload
	updated, err := service.Update(context.Background(), 1, ProductCreateDto{Name: "", Price: 1, Stock: 1})
	// then: the store is never called
	assert.True(t, cerrors.IsValidation(err))
	assert.Nil(t, updated)
	assert.Zero(t, mockStore.updateCalls)

	// when: the store reports a missing row
	mockStore2 := &mockProductStore{error: cerrors.ErrProductNotFound}
	updated, err = NewService(mockStore2).Update(context.Background(), 1, ProductCreateDto{Name: "X", Price: 1, Stock: 1})
	// then
	assert.ErrorIs(t, err, cerrors.ErrProductNotFound)
	assert.Nil(t, updated)
}

func Test_CatalogService_Delete(t *testing.T) {
	t.Run("Error - missing product fails the existence check", func(t *testing.T) {
		// given
		mockStore := &mockProductStore{findByIDErr: cerrors.ErrProductNotFound}
		service := NewService(mockStore)
		// when
		deleted, err := service.Delete(context.Background(), 42)
		// then: the delete itself never runs
		assert.ErrorIs(t, err, cerrors.ErrProductNotFound)
		assert.Nil(t, deleted)
		assert.Zero(t, mockStore.deleteCalls)
	})

	t.Run("Success - existing product is deleted and returned", func(t *testing.T) {
		// given
		mockStore := &mockProductStore{
			product: store.Product{ID: 7, Name: "Widget", Price: 9.99, Stock: 5},
		}
		service := NewService(mockStore)
		// when
		deleted, err := service.Delete(context.Background(), 7)
		// then
		require.NoError(t, err)
		assert.Equal(t, &ProductDto{ID: 7, Name: "Widget", Price: 9.99, Stock: 5}, deleted)
		assert.Equal(t, 1, mockStore.deleteCalls)
	})
}

func Test_ValidateProduct(t *testing.T) {
	testCases := []struct {
		name     string
		payload  ProductCreateDto
		expected string
	}{
		{name: "valid", payload: ProductCreateDto{Name: "Widget", Price: 9.99, Stock: 5}},
		{name: "empty name", payload: ProductCreateDto{Name: "", Price: 9.99, Stock: 5}, expected: "Product name is required"},
		{name: "whitespace name", payload: ProductCreateDto{Name: " \t ", Price: 9.99, Stock: 5}, expected: "Product name is required"},
		{name: "overlong name", payload: ProductCreateDto{Name: strings.Repeat("a", 101), Price: 1, Stock: 0}, expected: "Product name must be at most 100 characters"},
		{name: "zero price", payload: ProductCreateDto{Name: "X", Price: 0, Stock: 5}, expected: "Price must be positive"},
		{name: "negative price", payload: ProductCreateDto{Name: "X", Price: -1, Stock: 5}, expected: "Price must be positive"},
		{name: "negative stock", payload: ProductCreateDto{Name: "X", Price: 1, Stock: -1}, expected: "Stock cannot be negative"},
		{name: "zero stock is allowed", payload: ProductCreateDto{Name: "X", Price: 1, Stock: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProduct(tc.payload)
			if tc.expected == "" {
				assert.NoError(t, err)
				return
			}
			var ve *cerrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.expected, ve.Message)
		})
	}
}
