package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

const rsvpReminderJobName = "rsvp_reminders"

type rsvpReminderSender interface {
	SendRSVPReminders(ctx context.Context, now time.Time) (usecase.ReminderResult, error)
}

// RegisterRSVPReminders schedules the RSVP reminder sweep.
func RegisterRSVPReminders(s *Service, reminders rsvpReminderSender, cronExpr string) (gocron.Job, error) {
	return s.AddJob(rsvpReminderJobName, cronExpr, 2*time.Minute, func(ctx context.Context) error {
		_, err := reminders.SendRSVPReminders(ctx, time.Now().UTC())
		return err
	})
}
