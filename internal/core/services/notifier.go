package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"librental/internal/adapters/persistence/models"
)

// Notifier sends rental events to an external webhook (e.g. Slack/Discord compatible)
type Notifier struct {
	webhookURL string
	enabled    bool
	client     *http.Client
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	webhookURL := os.Getenv("LIBRENTAL_WEBHOOK_URL")
	return &Notifier{
		webhookURL: webhookURL,
		enabled:    webhookURL != "",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsEnabled checks if notification is enabled
func (s *Notifier) IsEnabled() bool {
	return s.enabled
}

// sendWebhook posts a message payload to the configured webhook
func (s *Notifier) sendWebhook(message string) error {
	if !s.enabled {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", s.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return nil
}

// NotifyReservationCreated sends notification for a new reservation
func (s *Notifier) NotifyReservationCreated(reservation *models.Reservation) {
	bookTitle := ""
	if reservation.Book != nil {
		bookTitle = reservation.Book.Title
	}
	userName := ""
	if reservation.User != nil {
		userName = reservation.User.Name
	}

	message := fmt.Sprintf(`🆕 New reservation

📋 ID: #%d
👤 User: %s
📖 Book: %s
📆 Due: %s
💰 Total fee: %s`,
		reservation.ID,
		userName,
		bookTitle,
		reservation.ExpectedReturnDate.Format("2006-01-02"),
		reservation.TotalFee.StringFixed(2),
	)

	s.sendWebhook(message)
}

// NotifyOverdueReturn sends notification for a late return
func (s *Notifier) NotifyOverdueReturn(reservation *models.Reservation) {
	bookTitle := ""
	if reservation.Book != nil {
		bookTitle = reservation.Book.Title
	}

	message := fmt.Sprintf(`⚠️ Late return

📋 ID: #%d
📖 Book: %s
📆 Was due: %s
💰 Late fee: %s`,
		reservation.ID,
		bookTitle,
		reservation.ExpectedReturnDate.Format("2006-01-02"),
		reservation.LateFee.StringFixed(2),
	)

	s.sendWebhook(message)
}

// NotifyOverdueReminder sends a reminder for a reservation that is past due and not returned
func (s *Notifier) NotifyOverdueReminder(reservation *models.Reservation, daysLate int64) {
	bookTitle := ""
	if reservation.Book != nil {
		bookTitle = reservation.Book.Title
	}
	userName := ""
	if reservation.User != nil {
		userName = reservation.User.Name
	}

	message := fmt.Sprintf(`⏰ Overdue reminder

📋 ID: #%d
👤 User: %s
📖 Book: %s
📆 Was due: %s (%d days ago)`,
		reservation.ID,
		userName,
		bookTitle,
		reservation.ExpectedReturnDate.Format("2006-01-02"),
		daysLate,
	)

	s.sendWebhook(message)
}
