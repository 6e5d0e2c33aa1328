package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is a unit of background work. An empty Schedule registers the task
// for on-demand runs only.
type Task interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

type funcTask struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
}

func (t funcTask) Name() string                  { return t.name }
func (t funcTask) Schedule() string              { return t.schedule }
func (t funcTask) Run(ctx context.Context) error { return t.run(ctx) }

// NewTask wraps a function as a Task.
func NewTask(name, schedule string, run func(ctx context.Context) error) Task {
	return funcTask{name: name, schedule: schedule, run: run}
}

type Scheduler struct {
	cron    *cron.Cron
	tasks   []Task
	timeout time.Duration
}

func New(timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		tasks:   make([]Task, 0),
		timeout: timeout,
	}
}

// Register adds the task and schedules it when it carries a cron spec.
func (s *Scheduler) Register(task Task) error {
	if spec := task.Schedule(); spec != "" {
		if _, err := s.cron.AddFunc(spec, func() { s.execute(task) }); err != nil {
			return fmt.Errorf("schedule %s: %w", task.Name(), err)
		}
		log.Printf("📅 [%s] Scheduled with cron: %s", task.Name(), spec)
	} else {
		log.Printf("📝 [%s] Registered as on-demand task", task.Name())
	}

	s.tasks = append(s.tasks, task)
	return nil
}

func (s *Scheduler) execute(task Task) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Printf("⏱️  [%s] Starting scheduled run...", task.Name())
	if err := task.Run(ctx); err != nil {
		log.Printf("❌ [%s] Run failed: %v", task.Name(), err)
		return
	}
	log.Printf("✅ [%s] Run completed", task.Name())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("🚀 Scheduler started with %d task(s)", len(s.tasks))
}

// Stop halts the cron loop and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Scheduler stopped")
}

// RunByName runs a registered task immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, task := range s.tasks {
		if task.Name() == name {
			return task.Run(ctx)
		}
	}
	return fmt.Errorf("task %q is not registered", name)
}

func (s *Scheduler) Tasks() []string {
	names := make([]string, len(s.tasks))
	for i, task := range s.tasks {
		names[i] = task.Name()
	}
	return names
}
