package services

import (
	"context"
	"log"
	"time"

	"librental/internal/adapters/persistence/repositories"
	"librental/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService sends daily reminders for overdue reservations.
// It only reads reservations; status transitions happen on return.
type ReminderService struct {
	reservationRepo repositories.ReservationRepository
	notifier        *Notifier
	cron            *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{
		reservationRepo: repositories.NewReservationRepository(db),
		notifier:        NewNotifier(),
		cron:            cron.New(),
	}
}

// Start schedules the daily reminder job (08:30 daily)
func (s *ReminderService) Start() {
	s.cron.AddFunc("30 8 * * *", s.sendOverdueReminders)
	s.cron.Start()
	log.Println("🚀 ReminderService started (daily at 08:30)")
}

// Stop stops the cron scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

func (s *ReminderService) sendOverdueReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()

	// Due-today is not overdue yet, so the cutoff is today's midnight.
	reservations, err := s.reservationRepo.ListOverdue(ctx, domain.StartOfDay(now))
	if err != nil {
		log.Printf("❌ Overdue reminder query error: %v", err)
		return
	}

	for _, reservation := range reservations {
		daysLate := domain.DaysBetween(reservation.ExpectedReturnDate, now)
		s.notifier.NotifyOverdueReminder(reservation, daysLate)
	}

	if len(reservations) > 0 {
		log.Printf("📅 Sent %d overdue reminders", len(reservations))
	}
}
