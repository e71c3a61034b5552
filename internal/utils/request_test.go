package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/aaravmahajanofficial/pawpair-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()
	productID := uuid.New()

	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantCode   string
	}{
		{"Valid", `{"product_id":"` + productID.String() + `","owner_size":"M"}`, true, http.StatusOK, ""},
		{"Empty Body", ``, false, http.StatusBadRequest, appErrors.ErrCodeBadRequest},
		{"Malformed", `{"product_id":`, false, http.StatusBadRequest, appErrors.ErrCodeBadRequest},
		{"Unknown Field", `{"product_id":"` + productID.String() + `","owner_size":"M","price":1}`, false, http.StatusBadRequest, appErrors.ErrCodeBadRequest},
		{"Two Documents", `{"product_id":"` + productID.String() + `","owner_size":"M"}{}`, false, http.StatusBadRequest, appErrors.ErrCodeBadRequest},
		{"No Size", `{"product_id":"` + productID.String() + `"}`, false, http.StatusBadRequest, appErrors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			var dest models.AddLineRequest

			// Act
			ok := utils.ParseAndValidate(req, rr, &dest, validate)

			// Assert
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantOK {
				assert.Equal(t, productID, dest.ProductID)
				return
			}
			assert.Contains(t, rr.Body.String(), tt.wantCode)
		})
	}
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	got, err := utils.ParseID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = utils.ParseID(httptest.NewRequest(http.MethodGet, "/api/v1/orders/", nil), "id")
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc", nil)
	req.SetPathValue("id", "abc")
	_, err = utils.ParseID(req, "id")
	assert.Error(t, err)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query              string
		wantPage, wantSize int
	}{
		{"", 1, 10},
		{"page=2&size=25", 2, 25},
		{"page=0&size=0", 1, 10},
		{"page=-3&size=51", 1, 10},
		{"page=4&size=50", 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?"+tt.query, nil)

			page, size := utils.ParsePagination(req)

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}
