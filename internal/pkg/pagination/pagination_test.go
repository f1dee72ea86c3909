package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librental/internal/pkg/pagination"
)

func getParamsFor(t *testing.T, target string) *pagination.Params {
	t.Helper()

	var params *pagination.Params
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		params = pagination.GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, params)

	return params
}

func Test_GetParams(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedPage   int
		expectedLimit  int
		expectedOffset int
	}{
		{
			name:           "defaults",
			target:         "/items",
			expectedPage:   1,
			expectedLimit:  pagination.DefaultLimit,
			expectedOffset: 0,
		},
		{
			name:           "explicit_page_and_limit",
			target:         "/items?page=3&limit=10",
			expectedPage:   3,
			expectedLimit:  10,
			expectedOffset: 20,
		},
		{
			name:           "page_below_one_clamped",
			target:         "/items?page=0&limit=10",
			expectedPage:   1,
			expectedLimit:  10,
			expectedOffset: 0,
		},
		{
			name:           "limit_above_max_clamped",
			target:         "/items?page=1&limit=500",
			expectedPage:   1,
			expectedLimit:  pagination.MaxLimit,
			expectedOffset: 0,
		},
		{
			name:           "non_numeric_falls_back_to_defaults",
			target:         "/items?page=abc&limit=xyz",
			expectedPage:   1,
			expectedLimit:  pagination.DefaultLimit,
			expectedOffset: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := getParamsFor(t, tc.target)
			assert.Equal(t, tc.expectedPage, params.Page)
			assert.Equal(t, tc.expectedLimit, params.Limit)
			assert.Equal(t, tc.expectedOffset, params.Offset)
		})
	}
}

func Test_GetMeta(t *testing.T) {
	params := &pagination.Params{Page: 2, Limit: 10, Offset: 10}

	meta := pagination.GetMeta(params, 35)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, int64(35), meta.Total)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func Test_GetMeta_LastPage(t *testing.T) {
	params := &pagination.Params{Page: 4, Limit: 10, Offset: 30}

	meta := pagination.GetMeta(params, 35)

	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func Test_NewResponse(t *testing.T) {
	params := &pagination.Params{Page: 1, Limit: 10}
	data := []string{"a", "b"}

	resp := pagination.NewResponse(data, params, 2)

	assert.Equal(t, data, resp.Data)
	assert.Equal(t, 1, resp.Meta.TotalPages)
	assert.False(t, resp.Meta.HasNext)
	assert.False(t, resp.Meta.HasPrev)
}
