package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librental/internal/adapters/persistence/models"
	"librental/internal/core/domain"
)

func Test_BookService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("all_copies_start_available", func(t *testing.T) {
		svc := NewBookService(newFakeBookRepo())

		book, err := svc.Create(ctx, &CreateBookInput{
			ExternalID:    42,
			Title:         "The Go Programming Language",
			Author:        "Donovan & Kernighan",
			Price:         decimal.NewNullDecimal(decimal.RequireFromString("15.99")),
			StockQuantity: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, book.StockQuantity)
		assert.Equal(t, 3, book.AvailableQuantity)
	})

	t.Run("duplicate_external_id_fails", func(t *testing.T) {
		svc := NewBookService(newFakeBookRepo(testBook(1)))

		_, err := svc.Create(ctx, &CreateBookInput{
			ExternalID:    42,
			Title:         "Another Title",
			StockQuantity: 1,
		})

		assert.ErrorIs(t, err, ErrBookAlreadyExists)
	})
}

func Test_BookService_GetByExternalID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc := NewBookService(newFakeBookRepo(testBook(1)))

		book, err := svc.GetByExternalID(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), book.ExternalID)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := NewBookService(newFakeBookRepo())

		_, err := svc.GetByExternalID(ctx, 42)

		assert.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}

func Test_BookService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates_only_provided_fields", func(t *testing.T) {
		book := testBook(2)
		svc := NewBookService(newFakeBookRepo(book))

		newTitle := "Renamed"
		got, err := svc.Update(ctx, 42, &UpdateBookInput{Title: &newTitle})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "Donovan & Kernighan", got.Author)
		assert.True(t, got.Price.Valid)
	})

	t.Run("quantities_untouched", func(t *testing.T) {
		book := testBook(2)
		svc := NewBookService(newFakeBookRepo(book))

		newPrice := decimal.NewNullDecimal(decimal.RequireFromString("9.99"))
		got, err := svc.Update(ctx, 42, &UpdateBookInput{Price: &newPrice})

		require.NoError(t, err)
		assert.Equal(t, 3, got.StockQuantity)
		assert.Equal(t, 2, got.AvailableQuantity)
	})

	t.Run("not_found", func(t *testing.T) {
		svc := NewBookService(newFakeBookRepo())

		newTitle := "Renamed"
		_, err := svc.Update(ctx, 42, &UpdateBookInput{Title: &newTitle})

		assert.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}

func Test_BookService_List(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(testBook(1), &models.Book{
		ID:         2,
		ExternalID: 43,
		Title:      "Learning Go",
	}))

	books, total, err := svc.List(context.Background(), 0, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, books, 2)
}
