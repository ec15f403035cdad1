package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edgard/halalbot/internal/bot/tasks"
	"github.com/edgard/halalbot/internal/config"
)

// Scheduler drives the bot's housekeeping: media_cleanup prunes downloaded
// label photos older than media.max_age, and sql_maintenance vacuums the
// SQLite interaction store. Each task fires on the cron
// expression configured under scheduler.tasks and never overlaps itself.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]tasks.ScheduledTaskFunc
	mu        sync.Mutex
	running   bool
	scheduled int
}

// NewScheduler builds a scheduler over the housekeeping tasks in taskMap,
// keyed by the names used in the configuration.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger.With("component", "scheduler"),
		cfg:       cfg,
		taskMap:   taskMap,
	}, nil
}

// Start registers the enabled housekeeping tasks and starts the cron loop.
// A task that is unknown, has no schedule or has an unparsable cron
// expression is logged and left out; the bot keeps serving users without it.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	s.scheduled = 0
	if s.cfg == nil || len(s.cfg.Tasks) == 0 {
		s.logger.Warn("No housekeeping tasks configured")
	} else {
		for name, taskCfg := range s.cfg.Tasks {
			if !taskCfg.Enabled {
				s.logger.Info("Housekeeping task disabled", "task", name)
				continue
			}
			if err := s.register(name, taskCfg.Schedule); err != nil {
				s.logger.Warn("Housekeeping task not scheduled", "task", name, "schedule", taskCfg.Schedule, "error", err)
				continue
			}
			s.logger.Info("Housekeeping task scheduled", "task", name, "schedule", taskCfg.Schedule)
			s.scheduled++
		}
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "tasks_scheduled", s.scheduled)
	return nil
}

func (s *Scheduler) register(name, schedule string) error {
	run, ok := s.taskMap[name]
	if !ok {
		return fmt.Errorf("no task named %q", name)
	}
	if schedule == "" {
		return fmt.Errorf("empty schedule")
	}

	_, err := s.scheduler.NewJob(
		gocron.CronJob(schedule, true),
		gocron.NewTask(func(ctx context.Context, name string) {
			started := time.Now()
			if err := run(ctx); err != nil {
				s.logger.ErrorContext(ctx, "Housekeeping task failed", "task", name, "error", err)
				return
			}
			s.logger.InfoContext(ctx, "Housekeeping task finished", "task", name, "duration", time.Since(started))
		}, context.Background(), name),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// Scheduled returns how many tasks the last Start registered.
func (s *Scheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

// Stop shuts the cron loop down and waits for an in-flight cleanup or
// maintenance run to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("Scheduler shutdown failed", "error", err)
		return err
	}
	s.logger.Info("Scheduler stopped")
	return nil
}
