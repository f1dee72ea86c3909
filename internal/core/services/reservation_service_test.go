package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"librental/internal/adapters/persistence/models"
	"librental/internal/core/domain"
)

// ============================================================
// In-memory repository fakes
// ============================================================

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

type fakeBookRepo struct {
	books      map[int64]*models.Book
	decrements int
	increments int
}

func newFakeBookRepo(books ...*models.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[int64]*models.Book)}
	for _, b := range books {
		r.books[b.ExternalID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(_ context.Context, book *models.Book) error {
	if book.ID == 0 {
		book.ID = uint(len(r.books) + 1)
	}
	r.books[book.ExternalID] = book
	return nil
}

func (r *fakeBookRepo) GetByExternalID(_ context.Context, externalID int64) (*models.Book, error) {
	b, ok := r.books[externalID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *models.Book) error {
	r.books[book.ExternalID] = book
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	for extID, b := range r.books {
		if b.ID == id {
			delete(r.books, extID)
		}
	}
	return nil
}

func (r *fakeBookRepo) List(_ context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var out []*models.Book
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookRepo) ExistsByExternalID(_ context.Context, externalID int64) (bool, error) {
	_, ok := r.books[externalID]
	return ok, nil
}

func (r *fakeBookRepo) DecrementAvailable(_ context.Context, externalID int64) error {
	r.decrements++
	if b, ok := r.books[externalID]; ok {
		b.AvailableQuantity--
	}
	return nil
}

func (r *fakeBookRepo) IncrementAvailable(_ context.Context, externalID int64) error {
	r.increments++
	if b, ok := r.books[externalID]; ok {
		b.AvailableQuantity++
	}
	return nil
}

type fakeReservationRepo struct {
	reservations map[uint]*models.Reservation
	nextID       uint
}

func newFakeReservationRepo(reservations ...*models.Reservation) *fakeReservationRepo {
	r := &fakeReservationRepo{reservations: make(map[uint]*models.Reservation), nextID: 1}
	for _, res := range reservations {
		r.reservations[res.ID] = res
		if res.ID >= r.nextID {
			r.nextID = res.ID + 1
		}
	}
	return r
}

func (r *fakeReservationRepo) Create(_ context.Context, reservation *models.Reservation) error {
	reservation.ID = r.nextID
	r.nextID++
	r.reservations[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id uint) (*models.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return res, nil
}

func (r *fakeReservationRepo) Update(_ context.Context, reservation *models.Reservation) error {
	r.reservations[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepo) List(_ context.Context, offset, limit int) ([]*models.Reservation, int64, error) {
	var out []*models.Reservation
	for _, res := range r.reservations {
		out = append(out, res)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReservationRepo) ListByUserID(_ context.Context, userID uint) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, res := range r.reservations {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) ListByStatus(_ context.Context, status string) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, res := range r.reservations {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) ListOverdue(_ context.Context, asOf time.Time) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, res := range r.reservations {
		if res.Status == models.ReservationStatusActive && res.ExpectedReturnDate.Before(asOf) {
			out = append(out, res)
		}
	}
	return out, nil
}

// ============================================================
// Test fixtures
// ============================================================

func testUser() *models.User {
	return &models.User{
		ID:       1,
		Name:     "Jo Reader",
		Username: "jreader",
		Email:    "jo@example.org",
		Role:     models.RoleUser,
		IsActive: true,
	}
}

func testBook(available int) *models.Book {
	return &models.Book{
		ID:                1,
		ExternalID:        42,
		Title:             "The Go Programming Language",
		Author:            "Donovan & Kernighan",
		Price:             decimal.NewNullDecimal(decimal.RequireFromString("15.99")),
		StockQuantity:     3,
		AvailableQuantity: available,
	}
}

func newTestReservationService(userRepo *fakeUserRepo, bookRepo *fakeBookRepo, reservationRepo *fakeReservationRepo) *ReservationService {
	return NewReservationService(reservationRepo, bookRepo, userRepo, nil)
}

// ============================================================
// Create
// ============================================================

func Test_ReservationService_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("reserves_available_copy", func(t *testing.T) {
		userRepo := newFakeUserRepo(testUser())
		bookRepo := newFakeBookRepo(testBook(2))
		reservationRepo := newFakeReservationRepo()
		svc := newTestReservationService(userRepo, bookRepo, reservationRepo)

		reservation, err := svc.Create(ctx, &CreateReservationInput{
			UserID:         1,
			BookExternalID: 42,
			RentalDays:     7,
			StartDate:      start,
		})

		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusActive, reservation.Status)
		assert.Equal(t, start.AddDate(0, 0, 7), reservation.ExpectedReturnDate)
		assert.True(t, reservation.TotalFee.Equal(decimal.RequireFromString("111.93")),
			"total fee was %s", reservation.TotalFee)
		assert.True(t, reservation.LateFee.IsZero())
		assert.True(t, reservation.DailyRate.Valid)
		assert.Equal(t, 1, bookRepo.decrements)
		assert.Equal(t, 1, bookRepo.books[42].AvailableQuantity)
	})

	t.Run("unknown_user_fails", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		bookRepo := newFakeBookRepo(testBook(2))
		svc := newTestReservationService(userRepo, bookRepo, newFakeReservationRepo())

		_, err := svc.Create(ctx, &CreateReservationInput{
			UserID:         99,
			BookExternalID: 42,
			RentalDays:     7,
			StartDate:      start,
		})

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Equal(t, 0, bookRepo.decrements)
	})

	t.Run("unknown_book_fails", func(t *testing.T) {
		userRepo := newFakeUserRepo(testUser())
		bookRepo := newFakeBookRepo()
		svc := newTestReservationService(userRepo, bookRepo, newFakeReservationRepo())

		_, err := svc.Create(ctx, &CreateReservationInput{
			UserID:         1,
			BookExternalID: 42,
			RentalDays:     7,
			StartDate:      start,
		})

		assert.ErrorIs(t, err, domain.ErrBookNotFound)
	})

	t.Run("no_copies_available_fails_without_decrement", func(t *testing.T) {
		userRepo := newFakeUserRepo(testUser())
		bookRepo := newFakeBookRepo(testBook(0))
		reservationRepo := newFakeReservationRepo()
		svc := newTestReservationService(userRepo, bookRepo, reservationRepo)

		_, err := svc.Create(ctx, &CreateReservationInput{
			UserID:         1,
			BookExternalID: 42,
			RentalDays:     7,
			StartDate:      start,
		})

		assert.ErrorIs(t, err, domain.ErrBookNotAvailable)
		assert.Equal(t, 0, bookRepo.decrements)
		assert.Empty(t, reservationRepo.reservations)
	})

	t.Run("unpriced_book_gets_zero_fee", func(t *testing.T) {
		book := testBook(1)
		book.Price = decimal.NullDecimal{}
		userRepo := newFakeUserRepo(testUser())
		bookRepo := newFakeBookRepo(book)
		svc := newTestReservationService(userRepo, bookRepo, newFakeReservationRepo())

		reservation, err := svc.Create(ctx, &CreateReservationInput{
			UserID:         1,
			BookExternalID: 42,
			RentalDays:     7,
			StartDate:      start,
		})

		require.NoError(t, err)
		assert.True(t, reservation.TotalFee.IsZero())
		assert.False(t, reservation.DailyRate.Valid)
	})
}

// ============================================================
// Return
// ============================================================

func activeReservation(book *models.Book, user *models.User) *models.Reservation {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &models.Reservation{
		ID:                 1,
		UserID:             user.ID,
		BookID:             book.ID,
		RentalDays:         7,
		StartDate:          start,
		ExpectedReturnDate: start.AddDate(0, 0, 7),
		DailyRate:          book.Price,
		TotalFee:           decimal.RequireFromString("111.93"),
		LateFee:            decimal.Zero,
		Status:             models.ReservationStatusActive,
		User:               user,
		Book:               book,
	}
}

func Test_ReservationService_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("on_time_return_ends_returned_with_zero_late_fee", func(t *testing.T) {
		user := testUser()
		book := testBook(0)
		reservation := activeReservation(book, user)
		bookRepo := newFakeBookRepo(book)
		reservationRepo := newFakeReservationRepo(reservation)
		svc := newTestReservationService(newFakeUserRepo(user), bookRepo, reservationRepo)

		got, err := svc.Return(ctx, 1, &ReturnInput{
			ReturnDate: reservation.ExpectedReturnDate,
		})

		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusReturned, got.Status)
		assert.True(t, got.LateFee.IsZero())
		require.NotNil(t, got.ActualReturnDate)
		assert.Equal(t, 1, bookRepo.increments)
		assert.Equal(t, 1, book.AvailableQuantity)
	})

	t.Run("early_return_ends_returned", func(t *testing.T) {
		user := testUser()
		book := testBook(0)
		reservation := activeReservation(book, user)
		bookRepo := newFakeBookRepo(book)
		svc := newTestReservationService(newFakeUserRepo(user), bookRepo, newFakeReservationRepo(reservation))

		got, err := svc.Return(ctx, 1, &ReturnInput{
			ReturnDate: reservation.ExpectedReturnDate.AddDate(0, 0, -2),
		})

		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusReturned, got.Status)
		assert.True(t, got.LateFee.IsZero())
	})

	t.Run("late_return_ends_overdue_with_late_fee", func(t *testing.T) {
		user := testUser()
		book := testBook(0)
		reservation := activeReservation(book, user)
		bookRepo := newFakeBookRepo(book)
		svc := newTestReservationService(newFakeUserRepo(user), bookRepo, newFakeReservationRepo(reservation))

		got, err := svc.Return(ctx, 1, &ReturnInput{
			ReturnDate: reservation.ExpectedReturnDate.AddDate(0, 0, 3),
		})

		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusOverdue, got.Status)
		// 15.99 * 0.15 * 3 = 7.1955 -> 7.20
		assert.True(t, got.LateFee.Equal(decimal.RequireFromString("7.20")),
			"late fee was %s", got.LateFee)
		assert.Equal(t, 1, bookRepo.increments)
	})

	t.Run("late_return_of_unpriced_book_gets_zero_late_fee", func(t *testing.T) {
		user := testUser()
		book := testBook(0)
		book.Price = decimal.NullDecimal{}
		reservation := activeReservation(book, user)
		svc := newTestReservationService(newFakeUserRepo(user), newFakeBookRepo(book), newFakeReservationRepo(reservation))

		got, err := svc.Return(ctx, 1, &ReturnInput{
			ReturnDate: reservation.ExpectedReturnDate.AddDate(0, 0, 3),
		})

		require.NoError(t, err)
		assert.Equal(t, models.ReservationStatusOverdue, got.Status)
		assert.True(t, got.LateFee.IsZero())
	})

	t.Run("missing_book_record_fails_without_mutation", func(t *testing.T) {
		user := testUser()
		book := testBook(0)
		reservation := activeReservation(book, user)
		reservation.Book = nil
		bookRepo := newFakeBookRepo(book)
		svc := newTestReservationService(newFakeUserRepo(user), bookRepo, newFakeReservationRepo(reservation))

		_, err := svc.Return(ctx, 1, &ReturnInput{ReturnDate: reservation.ExpectedReturnDate})

		assert.ErrorIs(t, err, domain.ErrBookNotFound)
		assert.Equal(t, 0, bookRepo.increments)
		assert.Equal(t, models.ReservationStatusActive, reservation.Status)
		assert.Nil(t, reservation.ActualReturnDate)
	})

	t.Run("second_return_fails", func(t *testing.T) {
		user := testUser()
		book := testBook(0)
		reservation := activeReservation(book, user)
		bookRepo := newFakeBookRepo(book)
		svc := newTestReservationService(newFakeUserRepo(user), bookRepo, newFakeReservationRepo(reservation))

		_, err := svc.Return(ctx, 1, &ReturnInput{ReturnDate: reservation.ExpectedReturnDate})
		require.NoError(t, err)

		_, err = svc.Return(ctx, 1, &ReturnInput{ReturnDate: reservation.ExpectedReturnDate})
		assert.ErrorIs(t, err, domain.ErrReservationNotActive)
		assert.Equal(t, 1, bookRepo.increments, "availability must not be incremented twice")
	})

	t.Run("unknown_reservation_fails", func(t *testing.T) {
		svc := newTestReservationService(newFakeUserRepo(), newFakeBookRepo(), newFakeReservationRepo())

		_, err := svc.Return(ctx, 99, &ReturnInput{ReturnDate: time.Now()})
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})
}

// ============================================================
// Queries
// ============================================================

func Test_ReservationService_ListOverdue(t *testing.T) {
	ctx := context.Background()
	user := testUser()
	book := testBook(1)

	overdue := activeReservation(book, user)
	overdue.ID = 1
	overdue.ExpectedReturnDate = time.Now().AddDate(0, 0, -2)

	current := activeReservation(book, user)
	current.ID = 2
	current.ExpectedReturnDate = time.Now().AddDate(0, 0, 5)

	returned := activeReservation(book, user)
	returned.ID = 3
	returned.ExpectedReturnDate = time.Now().AddDate(0, 0, -10)
	returned.Status = models.ReservationStatusReturned

	dueToday := activeReservation(book, user)
	dueToday.ID = 4
	dueToday.ExpectedReturnDate = domain.StartOfDay(time.Now())

	svc := newTestReservationService(newFakeUserRepo(user), newFakeBookRepo(book),
		newFakeReservationRepo(overdue, current, returned, dueToday))

	got, err := svc.ListOverdue(ctx)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

// A reservation due today is not overdue: it is excluded from the
// overdue listing for the whole day, and returning it that day ends
// RETURNED with a zero late fee.
func Test_ReservationService_DueToday(t *testing.T) {
	ctx := context.Background()
	user := testUser()
	book := testBook(0)
	today := domain.StartOfDay(time.Now())

	reservation := activeReservation(book, user)
	reservation.ExpectedReturnDate = today

	svc := newTestReservationService(newFakeUserRepo(user), newFakeBookRepo(book),
		newFakeReservationRepo(reservation))

	listed, err := svc.ListOverdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed, "a reservation due today must not be listed as overdue")

	got, err := svc.Return(ctx, 1, &ReturnInput{ReturnDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusReturned, got.Status)
	assert.True(t, got.LateFee.IsZero())
}
