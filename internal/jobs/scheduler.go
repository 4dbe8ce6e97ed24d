package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler запускает зарегистрированные задачи с заданным интервалом
// Запуски одной задачи не перекрываются
type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      []Job
	logger    Logger

	mu      sync.Mutex
	started bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewScheduler создает планировщик в UTC
func NewScheduler(logger Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// AddJob регистрирует задачу с интервалом запуска
func (s *Scheduler) AddJob(job Job, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("jobs: interval for %s must be positive", job.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.scheduler.Every(interval).Do(s.execute, job); err != nil {
		return fmt.Errorf("jobs: failed to register %s: %w", job.Name(), err)
	}

	s.jobs = append(s.jobs, job)
	s.logger.Info("Scheduler: registered job=%s every %s", job.Name(), interval)
	return nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	if len(s.jobs) == 0 {
		s.logger.Info("Scheduler: no jobs registered, not starting")
		return
	}

	s.scheduler.StartAsync()
	s.started = true

	s.logger.Info("Scheduler: started with %d job(s)", len(s.jobs))
}

// Stop отменяет контекст выполняемых задач и останавливает планировщик
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.cancel()
	s.scheduler.Stop()
	s.started = false

	s.logger.Info("Scheduler: stopped")
}

// IsRunning запущен ли планировщик
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// JobCount число зарегистрированных задач
func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *Scheduler) execute(job Job) {
	start := time.Now()
	if err := job.Execute(s.ctx); err != nil {
		s.logger.Error("Scheduler: job=%s failed after %s: %v", job.Name(), time.Since(start), err)
		return
	}
	s.logger.Info("Scheduler: job=%s finished in %s", job.Name(), time.Since(start))
}
