// Package jobs agrupa los trabajos en segundo plano del servicio.
package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// AlertSweepJobName nombre del trabajo de barrido en el scheduler.
const AlertSweepJobName = "inventory-alert-sweep"

// ErrSweepDisabled se devuelve al forzar un barrido con el intervalo en 0.
var ErrSweepDisabled = errors.New("jobs: barrido de alertas deshabilitado")

// Sweeper recorre todos los ítems y reconcilia sus alertas.
type Sweeper interface {
	Sweep(ctx context.Context) (appinv.SweepReport, error)
}

// Scheduler ejecuta el barrido periódico de alertas. Repara alertas que quedaron
// desfasadas tras un fallo de reconciliación y crea las de vencimiento al cambiar el día.
type Scheduler struct {
	scheduler gocron.Scheduler
	sweeper   Sweeper
	log       zerolog.Logger
	interval  time.Duration
	job       gocron.Job

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	last *appinv.SweepReport
}

// NewScheduler registra el barrido cada interval. interval <= 0 deja el scheduler sin trabajos.
func NewScheduler(sweeper Sweeper, interval time.Duration, log zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	js := &Scheduler{
		scheduler: s,
		sweeper:   sweeper,
		log:       log,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
	if interval <= 0 {
		log.Info().Msg("barrido de alertas deshabilitado")
		return js, nil
	}

	job, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { js.sweep(js.ctx) }),
		gocron.WithName(AlertSweepJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		_ = s.Shutdown()
		return nil, err
	}
	js.job = job
	return js, nil
}

// Enabled indica si hay barrido programado.
func (s *Scheduler) Enabled() bool {
	return s.job != nil
}

// Start arranca el scheduler (no bloquea).
func (s *Scheduler) Start() {
	if s.job != nil {
		s.log.Info().Dur("interval", s.interval).Msg("scheduler de alertas iniciado")
	}
	s.scheduler.Start()
}

// Stop cancela el barrido en curso y espera a que termine.
func (s *Scheduler) Stop() error {
	s.cancel()
	return s.scheduler.Shutdown()
}

// RunNow encola un barrido inmediato sin alterar la programación.
func (s *Scheduler) RunNow() error {
	if s.job == nil {
		return ErrSweepDisabled
	}
	return s.job.RunNow()
}

// LastReport devuelve el informe del último barrido completado; nil si aún no hubo.
func (s *Scheduler) LastReport() *appinv.SweepReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	r := *s.last
	return &r
}

func (s *Scheduler) sweep(ctx context.Context) {
	start := time.Now()
	rep, err := s.sweeper.Sweep(ctx)
	var ev *zerolog.Event
	switch {
	case err != nil:
		ev = s.log.Error().Err(err)
	case rep.Failed > 0:
		ev = s.log.Warn()
	default:
		ev = s.log.Info()
	}
	ev.Str("job", AlertSweepJobName).
		Int("items", rep.Items).
		Int("created", rep.Created).
		Int("resolved", rep.Resolved).
		Int("failed", rep.Failed).
		Dur("took", time.Since(start)).
		Msg("barrido de alertas")

	if err == nil {
		s.mu.Lock()
		s.last = &rep
		s.mu.Unlock()
	}
}
