package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"venue-reservations/internal/pkg/clock"
	"venue-reservations/internal/pkg/errs"
	"venue-reservations/internal/usecase/commands"
	"venue-reservations/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	taskCompleteEnded    = "complete_ended_reservations"
	taskUpcomingReminder = "payment_upcoming_reminders"
	taskDueTodayReminder = "payment_due_reminders"
	taskOverdueReminder  = "payment_overdue_notices"
	taskEventTomorrow    = "pre_event_staff_reminders"

	upcomingReminderDays = 7
	overdueLookbackDays  = 7
)

// TaskReport is one subtask's outcome. Count is the number of rows acted on;
// Error is empty on success.
type TaskReport struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

type Report struct {
	RanAt   time.Time    `json:"ran_at"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Tasks   []TaskReport `json:"tasks"`
}

type Runner interface {
	// RunDaily executes the five subtasks in fixed order. A subtask failure
	// is captured in the report and does not stop the remaining subtasks.
	// Every run, failed or not, is appended to the run history.
	RunDaily(ctx context.Context) (*Report, error)
}

type runnerImpl struct {
	uow        shared.UnitOfWork
	dispatcher commands.NotificationDispatcher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewRunner(uow shared.UnitOfWork, dispatcher commands.NotificationDispatcher, clk clock.Clock, logger *slog.Logger) Runner {
	return &runnerImpl{uow: uow, dispatcher: dispatcher, clock: clk, logger: logger}
}

func (r *runnerImpl) RunDaily(ctx context.Context) (*Report, error) {
	today := r.clock.Today()
	report := &Report{RanAt: r.clock.Now(), Success: true}

	tasks := []struct {
		name string
		fn   func(ctx context.Context, today time.Time) (int, error)
	}{
		{taskCompleteEnded, r.completeEnded},
		{taskUpcomingReminder, r.remindUpcoming},
		{taskDueTodayReminder, r.remindDueToday},
		{taskOverdueReminder, r.noticeOverdue},
		{taskEventTomorrow, r.remindEventTomorrow},
	}

	for _, t := range tasks {
		count, err := t.fn(ctx, today)
		tr := TaskReport{Name: t.name, Count: count}
		if err != nil {
			tr.Error = err.Error()
			report.Success = false
			r.logger.Error("automation task failed",
				slog.String("task", t.name),
				slog.String("error", err.Error()))
		}
		report.Tasks = append(report.Tasks, tr)
	}

	report.Message = summarize(report)
	if err := r.persist(ctx, report); err != nil {
		return report, errs.Wrap(err, "failed to record automation run")
	}
	return report, nil
}

// completeEnded moves Approved reservations whose interval has passed to
// Completed and refreshes their projection rows. Reruns select nothing
// because the status has moved on. Notifications are collected inside the
// transaction and only dispatched once it commits.
func (r *runnerImpl) completeEnded(ctx context.Context, today time.Time) (int, error) {
	var notifs []commands.Notification
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		notifs = nil
		ended, err := tx.Reservations().ListApprovedEndedBefore(ctx, r.clock.Now())
		if err != nil {
			return err
		}
		for _, res := range ended {
			if err := res.Complete(r.clock.Now(), false); err != nil {
				return errs.Wrap(err, "failed to complete reservation")
			}
			if err := tx.Reservations().Update(ctx, res); err != nil {
				return err
			}
			if err := tx.Projections().Sync(ctx, res); err != nil {
				return err
			}

			notifs = append(notifs, commands.Notification{
				Template:   "reservation_completed",
				EntityType: "reservation",
				EntityID:   res.ID(),
				DedupKey:   dedupKey("reservation_completed", res.ID(), today),
				Payload: map[string]any{
					"event_name": res.Contact().EventName,
					"ended_at":   res.Slot().End(),
				},
				Channels: []string{commands.ChannelEmail},
			})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, n := range notifs {
		r.dispatcher.Send(context.WithoutCancel(ctx), n)
	}
	return len(notifs), nil
}

func (r *runnerImpl) remindUpcoming(ctx context.Context, today time.Time) (int, error) {
	target := today.AddDate(0, 0, upcomingReminderDays)
	return r.notifyDue(ctx, today, "payment_upcoming", func(ctx context.Context, tx shared.Tx) ([]*shared.DueObligation, error) {
		return tx.Obligations().ListPendingDueOn(ctx, target)
	})
}

func (r *runnerImpl) remindDueToday(ctx context.Context, today time.Time) (int, error) {
	return r.notifyDue(ctx, today, "payment_due", func(ctx context.Context, tx shared.Tx) ([]*shared.DueObligation, error) {
		return tx.Obligations().ListPendingDueOn(ctx, today)
	})
}

func (r *runnerImpl) noticeOverdue(ctx context.Context, today time.Time) (int, error) {
	from := today.AddDate(0, 0, -overdueLookbackDays)
	to := today.AddDate(0, 0, -1)
	return r.notifyDue(ctx, today, "payment_overdue", func(ctx context.Context, tx shared.Tx) ([]*shared.DueObligation, error) {
		return tx.Obligations().ListPendingDueBetween(ctx, from, to)
	})
}

func (r *runnerImpl) notifyDue(
	ctx context.Context,
	today time.Time,
	kind string,
	selectDue func(ctx context.Context, tx shared.Tx) ([]*shared.DueObligation, error),
) (int, error) {
	var due []*shared.DueObligation
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		due, err = selectDue(ctx, tx)
		return err
	})
	if err != nil {
		return 0, err
	}

	for _, o := range due {
		r.dispatcher.Send(context.WithoutCancel(ctx), commands.Notification{
			Template:   kind,
			EntityType: "payment_obligation",
			EntityID:   o.ObligationID,
			DedupKey:   dedupKey(kind, o.ObligationID, today),
			Payload: map[string]any{
				"event_name":    o.EventName,
				"fee_type":      o.FeeType.String(),
				"amount_cents":  o.AmountCents,
				"due_date":      o.DueDate,
				"contact_email": o.ContactEmail,
			},
			Channels: []string{commands.ChannelEmail},
		})
	}
	return len(due), nil
}

func (r *runnerImpl) remindEventTomorrow(ctx context.Context, today time.Time) (int, error) {
	tomorrow := today.AddDate(0, 0, 1)

	var notifs []commands.Notification
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		notifs = nil
		starting, err := tx.Reservations().ListApprovedStartingOn(ctx, tomorrow)
		if err != nil {
			return err
		}
		for _, res := range starting {
			notifs = append(notifs, commands.Notification{
				Template:   "event_tomorrow",
				EntityType: "reservation",
				EntityID:   res.ID(),
				DedupKey:   dedupKey("event_tomorrow", res.ID(), today),
				Payload: map[string]any{
					"event_name": res.Contact().EventName,
					"starts_at":  res.Slot().Start(),
					"attendees":  res.Attendees(),
				},
				Channels: []string{commands.ChannelEmail},
			})
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, n := range notifs {
		r.dispatcher.Send(context.WithoutCancel(ctx), n)
	}
	return len(notifs), nil
}

func (r *runnerImpl) persist(ctx context.Context, report *Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Runs().Insert(ctx, &shared.RunRecord{
			ID:      uuid.New(),
			RanAt:   report.RanAt,
			Success: report.Success,
			Message: report.Message,
			Report:  payload,
		})
	})
}

func summarize(report *Report) string {
	failed := 0
	acted := 0
	for _, t := range report.Tasks {
		if t.Error != "" {
			failed++
		}
		acted += t.Count
	}
	if failed > 0 {
		return fmt.Sprintf("%d of %d tasks failed", failed, len(report.Tasks))
	}
	return fmt.Sprintf("all tasks succeeded, %d item(s) processed", acted)
}

func dedupKey(kind string, entityID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", kind, entityID, day.Format("2006-01-02"))
}
