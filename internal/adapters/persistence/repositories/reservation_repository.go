package repositories

import (
	"context"
	"time"

	"librental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reservationRepository implements ReservationRepository interface
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create creates a new reservation
func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// GetByID gets a reservation by ID with relations
func (r *reservationRepository) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Update updates a reservation
func (r *reservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// List lists all reservations with pagination
func (r *reservationRepository) List(ctx context.Context, offset, limit int) ([]*models.Reservation, int64, error) {
	var reservations []*models.Reservation
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Reservation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reservations).Error

	return reservations, total, err
}

// ListByUserID lists reservations of one user
func (r *reservationRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// ListByStatus lists reservations by status
func (r *reservationRepository) ListByStatus(ctx context.Context, status string) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// ListOverdue lists ACTIVE reservations whose expected return date has
// passed. Returns past their date keep their stored status until the
// return event flips it.
func (r *reservationRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Reservation, error) {
	var reservations []*models.Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("status = ?", models.ReservationStatusActive).
		Where("expected_return_date < ?", asOf).
		Order("expected_return_date ASC").
		Find(&reservations).Error
	return reservations, err
}
