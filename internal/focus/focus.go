// Package focus selects the "task of the day": one incomplete task
// highlighted for the current calendar day, stable across reloads.
package focus

import (
	"math/rand"
	"time"

	"github.com/taskwise-ai/taskwise/internal/date"
	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/task"
)

// Record is the persisted selection: a task id pinned to a calendar day.
type Record struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// Selector picks and persists the focus task. The random source and clock
// are injected so the choice is testable; the random pick and the
// persistence write are separate steps.
type Selector struct {
	st   *storage.Storage
	rng  *rand.Rand
	now  func() time.Time
	held string // current selection within this process
}

// New creates a Selector using the wall clock and a time-seeded source.
func New(st *storage.Storage) *Selector {
	return NewWith(st, rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewWith creates a Selector with an explicit random source and clock.
func NewWith(st *storage.Storage, rng *rand.Rand, now func() time.Time) *Selector {
	return &Selector{st: st, rng: rng, now: now}
}

// Pick returns the focus task id for today, re-evaluating against the
// current collection. It re-rolls only when the previous selection became
// invalid (completed, deleted) or a new day began; with no incomplete tasks
// it clears the selection and returns "".
func (s *Selector) Pick(tasks []*task.Task) string {
	incomplete := incompleteByID(tasks)
	today := date.FromTime(s.now()).String()

	if s.held != "" && !incomplete[s.held] {
		s.held = ""
	}

	if s.held == "" {
		if rec, ok := s.load(); ok && rec.Date == today && incomplete[rec.ID] {
			s.held = rec.ID
		}
	}

	if s.held == "" && len(incomplete) > 0 {
		s.held = s.choose(tasks)
		s.persist(Record{ID: s.held, Date: today})
	}

	if len(incomplete) == 0 {
		s.held = ""
		s.clear()
	}

	return s.held
}

// Reroll discards the current selection and picks a fresh one for today.
func (s *Selector) Reroll(tasks []*task.Task) string {
	s.held = ""
	s.clear()
	return s.Pick(tasks)
}

// choose picks uniformly at random from the first non-empty priority pool:
// high-priority incomplete tasks, then medium, then all incomplete.
func (s *Selector) choose(tasks []*task.Task) string {
	pool := pickPool(tasks)
	if len(pool) == 0 {
		return ""
	}
	return pool[s.rng.Intn(len(pool))].ID
}

func pickPool(tasks []*task.Task) []*task.Task {
	var all []*task.Task
	byPriority := make(map[task.Priority][]*task.Task)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		all = append(all, t)
		byPriority[t.Priority] = append(byPriority[t.Priority], t)
	}
	if pool := byPriority[task.PriorityHigh]; len(pool) > 0 {
		return pool
	}
	if pool := byPriority[task.PriorityMedium]; len(pool) > 0 {
		return pool
	}
	return all
}

func incompleteByID(tasks []*task.Task) map[string]bool {
	m := make(map[string]bool)
	for _, t := range tasks {
		if !t.Completed {
			m[t.ID] = true
		}
	}
	return m
}

func (s *Selector) load() (Record, bool) {
	var rec Record
	ok, err := s.st.Get(storage.KeyTaskOfDay, &rec)
	if err != nil || !ok || rec.ID == "" {
		return Record{}, false
	}
	return rec, true
}

// persist and clear are best-effort: a failed state write costs at worst a
// re-roll on the next load.
func (s *Selector) persist(rec Record) {
	_ = s.st.Put(storage.KeyTaskOfDay, rec)
}

func (s *Selector) clear() {
	_ = s.st.Delete(storage.KeyTaskOfDay)
}
