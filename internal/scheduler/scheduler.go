package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/logger"
)

// Scheduler runs one cooperative task on a fixed interval until stopped.
// The task must be side-effect free apart from replacing page state.
type Scheduler struct {
	mu        sync.Mutex
	scheduler *gocron.Scheduler
	task      func()
	interval  time.Duration
	log       logger.Logger
}

var errNoTask = errors.New("scheduler: no task configured")

// New creates a new Scheduler.
func New(interval time.Duration, task func(), log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Discard()
	}
	return &Scheduler{
		task:     task,
		interval: interval,
		log:      logger.Component(log, "scheduler"),
	}
}

// Start schedules the task and starts the underlying scheduler. The first run
// happens immediately. Starting a running scheduler is a no-op.
func (s *Scheduler) Start() error {
	if s.task == nil {
		return errNoTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduler != nil {
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	sched := gocron.NewScheduler(time.UTC)
	_, err := sched.Every(interval).SingletonMode().Do(func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Errorf("refresh task panicked: %v", r)
			}
		}()
		s.task()
	})
	if err != nil {
		return err
	}

	sched.StartAsync()
	s.scheduler = sched
	s.log.WithField("interval", interval.String()).Info("refresh task started")
	return nil
}

// Stop cancels future runs and waits for a running one to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		s.scheduler.Stop()
		s.scheduler = nil
		s.log.Info("refresh task stopped")
	}
}

// Running reports whether the task is scheduled.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler != nil && s.scheduler.IsRunning()
}
