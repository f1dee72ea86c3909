package handlers

import (
	"errors"
	"strconv"

	"librental/internal/adapters/persistence/models"
	"librental/internal/core/domain"
	"librental/internal/core/services"
	"librental/internal/pkg/pagination"
	"librental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// CreateBookRequest represents create book request
type CreateBookRequest struct {
	ExternalID    int64   `json:"external_id"`
	Title         string  `json:"title"`
	Author        string  `json:"author,omitempty"`
	Price         *string `json:"price,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
}

// parsePrice parses an optional decimal price string
func parsePrice(raw *string) (decimal.NullDecimal, error) {
	if raw == nil || *raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// Create adds a new book to the catalog
// @Summary Create book
// @Description Add a new title to the catalog (Librarian only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.ExternalID == 0 {
		return response.BadRequest(c, "External ID is required")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if req.StockQuantity < 0 {
		return response.BadRequest(c, "Stock quantity must not be negative")
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return response.BadRequest(c, "Invalid price")
	}

	input := &services.CreateBookInput{
		ExternalID:    req.ExternalID,
		Title:         req.Title,
		Author:        req.Author,
		Price:         price,
		StockQuantity: req.StockQuantity,
	}

	book, err := h.bookService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrBookAlreadyExists) {
			return response.Conflict(c, "Book with this external ID already exists")
		}
		return response.InternalServerError(c, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// List lists books
// @Summary List books
// @Description List catalog books with pagination
// @Tags Books
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	books, total, err := h.bookService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	data := make([]*models.BookResponse, 0, len(books))
	for _, b := range books {
		data = append(data, b.ToResponse())
	}

	result := pagination.NewResponse(data, params, total)

	return response.Success(c, "Books retrieved successfully", result)
}

// GetByExternalID gets a book by its external catalog ID
// @Summary Get book
// @Description Get a book by external catalog ID
// @Tags Books
// @Accept json
// @Produce json
// @Param external_id path int true "Book external ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{external_id} [get]
func (h *BookHandler) GetByExternalID(c *fiber.Ctx) error {
	externalID, err := strconv.ParseInt(c.Params("external_id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid book external ID")
	}

	book, err := h.bookService.GetByExternalID(c.Context(), externalID)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}

// UpdateBookRequest represents update book request
type UpdateBookRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Price  *string `json:"price"`
}

// Update updates a book's catalog fields
// @Summary Update book
// @Description Update catalog fields of a book (Librarian only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param external_id path int true "Book external ID"
// @Param body body UpdateBookRequest true "Book data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{external_id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	externalID, err := strconv.ParseInt(c.Params("external_id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid book external ID")
	}

	var req UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateBookInput{
		Title:  req.Title,
		Author: req.Author,
	}

	if req.Price != nil {
		price, err := parsePrice(req.Price)
		if err != nil {
			return response.BadRequest(c, "Invalid price")
		}
		input.Price = &price
	}

	book, err := h.bookService.Update(c.Context(), externalID, input)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", fiber.Map{
		"book": book.ToResponse(),
	})
}
