// Package store owns the canonical task collection and mirrors every
// mutation to persistent storage.
package store

import (
	"encoding/json"
	"time"

	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/task"
)

// Store holds the in-memory task collection. Tasks are kept most-recent-first
// at creation time; display order is the filter engine's concern.
type Store struct {
	st          *storage.Storage
	tasks       []*task.Task
	subscribers []func()
	now         func() time.Time
}

// Open creates a Store backed by the given storage. Call Load before use.
func Open(st *storage.Storage) *Store {
	return &Store{st: st, now: time.Now}
}

// SetNow overrides the clock, for tests.
func (s *Store) SetNow(fn func() time.Time) { s.now = fn }

// Load reads the persisted collection. A missing or malformed payload
// (anything that is not a JSON array whose every element carries a string
// id) is replaced by the seed set. Load never fails for shape problems;
// the returned flag reports whether the seed set was used.
func (s *Store) Load() (seeded bool) {
	var raw json.RawMessage
	ok, err := s.st.Get(storage.KeyTasks, &raw)
	if err != nil || !ok || !wellFormed(raw) {
		s.tasks = task.Seed(s.now())
		return true
	}

	var tasks []*task.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		s.tasks = task.Seed(s.now())
		return true
	}

	s.tasks = tasks
	return false
}

// wellFormed is the shape check applied at the persistence boundary: a JSON
// array whose every element carries a string id. An empty id string still
// counts; a missing, null, or non-string id does not.
func wellFormed(raw json.RawMessage) bool {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return false
	}
	for _, e := range elems {
		var head struct {
			ID *string `json:"id"`
		}
		if err := json.Unmarshal(e, &head); err != nil || head.ID == nil {
			return false
		}
	}
	return true
}

// Save writes the full collection snapshot. Every mutation calls it; callers
// treat a failed save as a warning, not a fatal error, since the in-memory
// state is still consistent.
func (s *Store) Save() error {
	return s.st.Put(storage.KeyTasks, s.tasks)
}

// Tasks returns a copy of the collection slice. The tasks themselves are
// shared; mutate them only through Store methods.
func (s *Store) Tasks() []*task.Task {
	return append([]*task.Task(nil), s.tasks...)
}

// Get returns the task with the given id, or nil.
func (s *Store) Get(id string) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Subscribe registers fn to run after every successful mutation.
func (s *Store) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

// Create assigns a fresh id and timestamps, forces Completed=false, and
// prepends the task to the collection.
func (s *Store) Create(t *task.Task) (*task.Task, error) {
	now := s.now()
	t.ID = task.NewID()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Completed = false
	t.CompletedAt = nil
	s.tasks = append([]*task.Task{t}, s.tasks...)
	err := s.Save()
	s.notify()
	return t, err
}

// Update applies mutate to the task with the given id and stamps UpdatedAt.
// A missing id is a silent no-op: the UI only updates tasks it displays.
func (s *Store) Update(id string, mutate func(*task.Task)) error {
	t := s.Get(id)
	if t == nil {
		return nil
	}
	mutate(t)
	t.UpdatedAt = s.now()
	err := s.Save()
	s.notify()
	return err
}

// Delete removes the task with the given id. Deleting a missing id is a no-op.
func (s *Store) Delete(id string) error {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			err := s.Save()
			s.notify()
			return err
		}
	}
	return nil
}

// ToggleSubtask flips the completed flag of exactly one subtask. Sibling
// subtasks and the parent's completion state are untouched.
func (s *Store) ToggleSubtask(taskID, subtaskID string) error {
	return s.Update(taskID, func(t *task.Task) {
		if sub := t.Subtask(subtaskID); sub != nil {
			sub.Completed = !sub.Completed
		}
	})
}

// ToggleCompletion flips a task's completed flag, setting CompletedAt on the
// transition to true and clearing it on the transition back.
func (s *Store) ToggleCompletion(taskID string) error {
	return s.Update(taskID, func(t *task.Task) {
		t.Completed = !t.Completed
		if t.Completed {
			now := s.now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	})
}

// SetImage stores a new image URL (or data URI) on the task. The AI hint is
// cleared: the image is now specific, so there is nothing left to generate.
func (s *Store) SetImage(taskID, imageURL string) error {
	return s.Update(taskID, func(t *task.Task) {
		t.ImageURL = imageURL
		t.DataAIHint = ""
	})
}
