package services

import (
	"context"
	"errors"
	"time"

	"librental/internal/adapters/persistence/models"
	"librental/internal/adapters/persistence/repositories"
	"librental/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReservationService handles the rental workflows: reserving a copy,
// processing the return, and the read-side queries.
type ReservationService struct {
	reservationRepo repositories.ReservationRepository
	bookRepo        repositories.BookRepository
	userRepo        repositories.UserRepository
	notifier        *Notifier
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repositories.ReservationRepository,
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
	notifier *Notifier,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		bookRepo:        bookRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// CreateReservationInput represents create reservation input
type CreateReservationInput struct {
	UserID         uint      `json:"user_id"`
	BookExternalID int64     `json:"book_external_id"`
	RentalDays     int       `json:"rental_days"`
	StartDate      time.Time `json:"start_date"`
}

// Create reserves a copy of a book for a user. The user must exist,
// the book must exist by external ID and have availability > 0. On
// success the reservation is persisted ACTIVE and the availability
// counter is decremented. There is no lock between the availability
// check and the decrement.
func (s *ReservationService) Create(ctx context.Context, input *CreateReservationInput) (*models.Reservation, error) {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	book, err := s.bookRepo.GetByExternalID(ctx, input.BookExternalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}

	if book.AvailableQuantity <= 0 {
		return nil, domain.ErrBookNotAvailable
	}

	reservation := &models.Reservation{
		UserID:             user.ID,
		BookID:             book.ID,
		RentalDays:         input.RentalDays,
		StartDate:          input.StartDate,
		ExpectedReturnDate: input.StartDate.AddDate(0, 0, input.RentalDays),
		DailyRate:          book.Price,
		TotalFee:           domain.CalculateTotalFee(book.Price, input.RentalDays),
		LateFee:            decimal.Zero,
		Status:             models.ReservationStatusActive,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	if err := s.bookRepo.DecrementAvailable(ctx, book.ExternalID); err != nil {
		return nil, err
	}

	// Attach relations for response mapping
	reservation.User = user
	reservation.Book = book

	if s.notifier != nil {
		s.notifier.NotifyReservationCreated(reservation)
	}

	return reservation, nil
}

// ReturnInput represents return processing input
type ReturnInput struct {
	ReturnDate time.Time `json:"return_date"`
}

// Return processes a book return. The reservation must still be
// ACTIVE; a second return fails. Late returns get a late fee and end
// OVERDUE, on-time returns end RETURNED with a zero late fee. The
// availability counter is incremented either way.
func (s *ReservationService) Return(ctx context.Context, id uint, input *ReturnInput) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}

	if reservation.IsTerminal() {
		return nil, domain.ErrReservationNotActive
	}

	// The book record must still exist: the late fee follows its
	// current price and the copy goes back into its availability.
	if reservation.Book == nil {
		return nil, domain.ErrBookNotFound
	}

	returnDate := input.ReturnDate
	reservation.ActualReturnDate = &returnDate

	daysLate := domain.DaysBetween(reservation.ExpectedReturnDate, returnDate)
	if daysLate > 0 {
		reservation.LateFee = domain.CalculateLateFee(reservation.Book.Price, daysLate)
		reservation.Status = models.ReservationStatusOverdue
	} else {
		reservation.LateFee = decimal.Zero
		reservation.Status = models.ReservationStatusReturned
	}

	if err := s.bookRepo.IncrementAvailable(ctx, reservation.Book.ExternalID); err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	if s.notifier != nil && reservation.Status == models.ReservationStatusOverdue {
		s.notifier.NotifyOverdueReturn(reservation)
	}

	return reservation, nil
}

// GetByID gets a reservation by ID
func (s *ReservationService) GetByID(ctx context.Context, id uint) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

// List lists reservations with pagination
func (s *ReservationService) List(ctx context.Context, offset, limit int) ([]*models.Reservation, int64, error) {
	return s.reservationRepo.List(ctx, offset, limit)
}

// ListByUser lists all reservations of one user
func (s *ReservationService) ListByUser(ctx context.Context, userID uint) ([]*models.Reservation, error) {
	return s.reservationRepo.ListByUserID(ctx, userID)
}

// ListActive lists reservations still out
func (s *ReservationService) ListActive(ctx context.Context) ([]*models.Reservation, error) {
	return s.reservationRepo.ListByStatus(ctx, models.ReservationStatusActive)
}

// ListByStatus lists reservations by status
func (s *ReservationService) ListByStatus(ctx context.Context, status string) ([]*models.Reservation, error) {
	return s.reservationRepo.ListByStatus(ctx, status)
}

// ListOverdue lists ACTIVE reservations past their expected return
// date. The cutoff is today's midnight because expected_return_date is
// a date column: a reservation due today can still be returned on time.
func (s *ReservationService) ListOverdue(ctx context.Context) ([]*models.Reservation, error) {
	return s.reservationRepo.ListOverdue(ctx, domain.StartOfDay(time.Now()))
}
