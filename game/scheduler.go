package game

// Scheduler runs delayed actions from inside the frame loop. Every action is
// stamped with the session it was scheduled in and is dropped instead of run
// once that session is over.
type Scheduler struct {
	tasks []scheduledTask
}

type scheduledTask struct {
	remaining float64
	session   uint64
	action    func()
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make([]scheduledTask, 0, 16)}
}

// After queues action to run once delay seconds of simulation have passed
func (s *Scheduler) After(delay float64, session uint64, action func()) {
	s.tasks = append(s.tasks, scheduledTask{remaining: delay, session: session, action: action})
}

// Pending returns the number of queued actions
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves time forward and runs every action that came due. Actions
// from another session, or any action while active is false, are dropped.
// Actions queued by a running action wait for the next Advance.
func (s *Scheduler) Advance(deltaTime float64, session uint64, active bool) (ran, dropped int) {
	if len(s.tasks) == 0 {
		return 0, 0
	}

	current := s.tasks
	s.tasks = make([]scheduledTask, 0, cap(current))

	var due []scheduledTask
	for _, t := range current {
		if !active || t.session != session {
			dropped++
			continue
		}
		t.remaining -= deltaTime
		if t.remaining <= 0 {
			due = append(due, t)
			continue
		}
		s.tasks = append(s.tasks, t)
	}

	for _, t := range due {
		t.action()
		ran++
	}
	return ran, dropped
}

// Clear drops every queued action
func (s *Scheduler) Clear() {
	s.tasks = s.tasks[:0]
}
