package services

import (
	"context"
	"errors"

	"librental/internal/adapters/persistence/models"
	"librental/internal/adapters/persistence/repositories"
	"librental/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Book service errors
var (
	ErrBookAlreadyExists = errors.New("book with this external ID already exists")
)

// BookService handles catalog business logic
type BookService struct {
	bookRepo repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	ExternalID    int64               `json:"external_id"`
	Title         string              `json:"title"`
	Author        string              `json:"author,omitempty"`
	Price         decimal.NullDecimal `json:"price"`
	StockQuantity int                 `json:"stock_quantity"`
}

// Create adds a new title to the catalog. All copies start available.
func (s *BookService) Create(ctx context.Context, input *CreateBookInput) (*models.Book, error) {
	exists, err := s.bookRepo.ExistsByExternalID(ctx, input.ExternalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBookAlreadyExists
	}

	book := &models.Book{
		ExternalID:        input.ExternalID,
		Title:             input.Title,
		Author:            input.Author,
		Price:             input.Price,
		StockQuantity:     input.StockQuantity,
		AvailableQuantity: input.StockQuantity,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetByExternalID gets a book by its catalog external ID
func (s *BookService) GetByExternalID(ctx context.Context, externalID int64) (*models.Book, error) {
	book, err := s.bookRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	return s.bookRepo.List(ctx, offset, limit)
}

// UpdateBookInput represents update book input
type UpdateBookInput struct {
	Title  *string              `json:"title"`
	Author *string              `json:"author"`
	Price  *decimal.NullDecimal `json:"price"`
}

// Update updates catalog fields of a book. Quantities are not touched
// here; availability only moves through the rental workflows.
func (s *BookService) Update(ctx context.Context, externalID int64, input *UpdateBookInput) (*models.Book, error) {
	book, err := s.bookRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Author != nil {
		book.Author = *input.Author
	}
	if input.Price != nil {
		book.Price = *input.Price
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}
