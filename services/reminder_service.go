// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"salonbase-backend/models"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders texts every customer with a booked appointment
// tomorrow, per salon, when the salon has reminders and SMS enabled
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var salons []models.Salon
	if err := s.db.Find(&salons, "is_active = ? AND deleted_at IS NULL AND appointment_reminders = ? AND sms_notifications = ?",
		true, true, true).Error; err != nil {
		log.Printf("Failed to fetch salons: %v", err)
		return
	}

	for _, salon := range salons {
		s.processSalonReminders(salon)
	}

	log.Println("Daily reminder processing completed")
}

// reminderWindow bounds "tomorrow" as midnight to midnight in now's
// location. Truncate would round in UTC and shift the window for any
// non-UTC deployment.
func reminderWindow(now time.Time) (start, end time.Time) {
	year, month, day := now.Date()
	start = time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
	end = time.Date(year, month, day+2, 0, 0, 0, 0, now.Location())
	return start, end
}

func (s *ReminderService) processSalonReminders(salon models.Salon) {
	start, end := reminderWindow(time.Now())

	var appointments []models.Appointment
	if err := s.db.Preload("Customer").
		Where("salon_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			salon.ID, "booked", start, end).
		Find(&appointments).Error; err != nil {
		log.Printf("Salon %s: Failed to fetch appointments: %v", salon.ID, err)
		return
	}

	for _, appointment := range appointments {
		message := fmt.Sprintf("Hi %s, this is a reminder of your %s appointment at %s tomorrow at %s.",
			appointment.Customer.Name,
			appointment.ServiceName,
			salon.Name,
			appointment.ScheduledAt.Format("15:04"))

		if err := s.sendSMS(appointment.Customer.Phone, message); err != nil {
			log.Printf("Salon %s: Failed to send reminder to %s: %v", salon.ID, appointment.Customer.Phone, err)
		}
	}
}

func (s *ReminderService) sendSMS(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
