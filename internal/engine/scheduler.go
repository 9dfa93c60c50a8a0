package engine

import "time"

// Task is a unit of deferred per-frame work. Step returns false once the task is finished.
type Task interface {
	Step(now time.Duration) bool
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func(now time.Duration) bool

func (f TaskFunc) Step(now time.Duration) bool { return f(now) }

type scheduled struct {
	id        uint64
	task      Task
	cancelled bool
}

// Handle cancels a scheduled task.
type Handle struct {
	s  *Scheduler
	id uint64
}

// Cancel stops the task before its next step. Cancelling twice is a no-op.
func (h Handle) Cancel() {
	if h.s == nil {
		return
	}
	for _, e := range h.s.tasks {
		if e.id == h.id {
			e.cancelled = true
			return
		}
	}
}

// Scheduler runs tasks once per tick in registration order. Tasks added while a tick is in
// progress start on the next tick.
type Scheduler struct {
	tasks  []*scheduled
	nextID uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(t Task) Handle {
	s.nextID++
	s.tasks = append(s.tasks, &scheduled{id: s.nextID, task: t})
	return Handle{s: s, id: s.nextID}
}

// After runs fn once when now reaches start+delay, where start is the time of the first tick.
func (s *Scheduler) After(delay time.Duration, fn func()) Handle {
	var due time.Duration = -1
	return s.Add(TaskFunc(func(now time.Duration) bool {
		if due < 0 {
			due = now + delay
		}
		if now < due {
			return true
		}
		fn()
		return false
	}))
}

// Every runs fn on each tick at least interval apart until fn returns false.
func (s *Scheduler) Every(interval time.Duration, fn func() bool) Handle {
	var next time.Duration = -1
	return s.Add(TaskFunc(func(now time.Duration) bool {
		if next >= 0 && now < next {
			return true
		}
		next = now + interval
		return fn()
	}))
}

// Tick steps every live task once.
func (s *Scheduler) Tick(now time.Duration) {
	current := s.tasks
	for _, e := range current {
		if e.cancelled {
			continue
		}
		if !e.task.Step(now) {
			e.cancelled = true
		}
	}

	kept := s.tasks[:0]
	for _, e := range s.tasks {
		if !e.cancelled {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

func (s *Scheduler) Len() int {
	count := 0
	for _, e := range s.tasks {
		if !e.cancelled {
			count++
		}
	}
	return count
}

func (s *Scheduler) Clear() {
	for _, e := range s.tasks {
		e.cancelled = true
	}
	s.tasks = nil
}
