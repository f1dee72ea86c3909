package repositories

import (
	"context"

	"librental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByExternalID gets a book by its catalog external ID
func (r *bookRepository) GetByExternalID(ctx context.Context, externalID int64) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update updates a book
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete soft deletes a book
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}

// List lists books with pagination
func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error

	return books, total, err
}

// ExistsByExternalID checks if a book with the external ID exists
func (r *bookRepository) ExistsByExternalID(ctx context.Context, externalID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("external_id = ?", externalID).Count(&count).Error
	return count > 0, err
}

// DecrementAvailable decrements the availability counter by one.
// No SELECT ... FOR UPDATE here; the store's default isolation is all
// the protection the counter gets.
func (r *bookRepository) DecrementAvailable(ctx context.Context, externalID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("external_id = ?", externalID).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", 1)).Error
}

// IncrementAvailable increments the availability counter by one
func (r *bookRepository) IncrementAvailable(ctx context.Context, externalID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("external_id = ?", externalID).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity + ?", 1)).Error
}
