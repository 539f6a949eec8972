// Package dispatch hands due pending reservations to the external booking
// authority on a schedule and records the outcomes.
package dispatch

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/courtline/courtline/internal/db"
	"github.com/courtline/courtline/internal/reservation"
)

const runTimeout = 10 * time.Minute

// CourtReserver is the opaque booking authority. How it arbitrates
// conflicting preferences is outside this system; it only reports a
// terminal status per request.
type CourtReserver interface {
	Reserve(ctx context.Context, d reservation.Draft) reservation.Status
}

// Dispatcher runs the daily wakeup: select pending reservations whose
// booking window opens today, highest priority first, and feed each to
// the reserver.
type Dispatcher struct {
	store     *db.DB
	reserver  CourtReserver
	scheduler gocron.Scheduler
	now       func() time.Time
}

func New(store *db.DB, reserver CourtReserver) (*Dispatcher, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithLocation(reservation.ServiceLocation),
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error().
						Str("job_id", jobID.String()).
						Str("job_name", jobName).
						Interface("panic", recoverData).
						Msg("Dispatch job panicked")
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		store:     store,
		reserver:  reserver,
		scheduler: sched,
		now:       time.Now,
	}, nil
}

// Register schedules the wakeup under the given cron expression,
// evaluated in the service timezone.
func (d *Dispatcher) Register(cronExpr string) error {
	jobLogger := log.With().Str("job_name", "reservation_dispatch").Str("cron", cronExpr).Logger()

	_, err := d.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
			defer cancel()
			d.RunOnce(jobLogger.WithContext(ctx))
		}),
		gocron.WithName("reservation_dispatch"),
	)
	if err != nil {
		jobLogger.Error().Err(err).Msg("Failed to register dispatch job")
		return err
	}
	jobLogger.Info().Msg("Dispatch job registered")
	return nil
}

// Start begins running scheduled wakeups.
func (d *Dispatcher) Start() {
	log.Info().Msg("Dispatcher starting")
	d.scheduler.Start()
}

// Stop shuts the scheduler down.
func (d *Dispatcher) Stop() error {
	log.Info().Msg("Dispatcher stopping")
	return d.scheduler.Shutdown()
}

// RunOnce performs a single wakeup pass for today's booking window.
func (d *Dispatcher) RunOnce(ctx context.Context) {
	logger := log.Ctx(ctx)

	today := d.now().In(reservation.ServiceLocation).Format(reservation.DateLayout)
	due, err := d.store.DuePending(ctx, today)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load due reservations")
		return
	}
	if len(due) == 0 {
		logger.Debug().Str("reserve_on", today).Msg("No reservations due")
		return
	}
	logger.Info().Int("due", len(due)).Str("reserve_on", today).Msg("Dispatching reservations")

	for _, rec := range due {
		recLogger := logger.With().
			Int64("uid", rec.Uid).
			Str("date", rec.Reservation.Date).
			Int("site", rec.Reservation.Site).
			Int("priority", rec.Reservation.Priority).
			Logger()

		status := d.reserver.Reserve(ctx, rec.Reservation)
		if !status.Terminal() {
			// The authority must answer with an outcome; a pending
			// status here would wedge the record forever.
			recLogger.Warn().Msg("Reserver returned non-terminal status, keeping record pending")
			continue
		}
		if err := d.store.UpdateStatus(ctx, rec.Uid, status); err != nil {
			recLogger.Error().Err(err).Msg("Failed to record reservation outcome")
			continue
		}
		recLogger.Info().
			Int("status_code", int(status.Code)).
			Str("status", status.Code.Label()).
			Msg("Reservation resolved")
	}
}
