package store

import (
	"testing"
	"time"

	"github.com/taskwise-ai/taskwise/internal/storage"
	"github.com/taskwise-ai/taskwise/internal/task"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := Open(st)
	s.SetNow(func() time.Time { return testNow })
	return s
}

func TestLoadSeedsWhenMissing(t *testing.T) {
	s := openTestStore(t)
	if seeded := s.Load(); !seeded {
		t.Fatal("empty storage must seed")
	}
	if s.Len() != 3 {
		t.Errorf("seeded %d tasks, want 3", s.Len())
	}
}

func TestLoadSeedsOnMalformedSnapshot(t *testing.T) {
	st, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cases := []any{
		"not an array",
		map[string]any{"tasks": []any{}},
		[]any{map[string]any{"title": "no id"}},
		[]any{map[string]any{"id": nil}},
		[]any{map[string]any{"id": 5}},
		[]any{nil},
	}
	for _, payload := range cases {
		if err := st.Put(storage.KeyTasks, payload); err != nil {
			t.Fatal(err)
		}
		s := Open(st)
		s.SetNow(func() time.Time { return testNow })
		if seeded := s.Load(); !seeded {
			t.Errorf("payload %v: malformed snapshot must seed", payload)
		}
	}
}

func TestLoadKeepsSnapshotWithEmptyID(t *testing.T) {
	st, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// An empty id is still a string id. One odd element must not cost the
	// user the rest of the collection.
	payload := []any{
		map[string]any{"id": "", "title": "Imported oddity"},
		map[string]any{"id": "abc123", "title": "Real task"},
	}
	if err := st.Put(storage.KeyTasks, payload); err != nil {
		t.Fatal(err)
	}

	s := Open(st)
	s.SetNow(func() time.Time { return testNow })
	if seeded := s.Load(); seeded {
		t.Fatal("snapshot with an empty-id element was replaced by the seed set")
	}
	if s.Len() != 2 {
		t.Errorf("loaded %d tasks, want 2", s.Len())
	}
	if s.Get("abc123") == nil {
		t.Error("well-formed task missing after load")
	}
}

func TestLoadKeepsWellFormedSnapshot(t *testing.T) {
	s := openTestStore(t)
	s.Load()
	created, err := s.Create(&task.Task{Title: "Persisted", Priority: task.PriorityLow})
	if err != nil {
		t.Fatal(err)
	}

	reopened := Open(s.st)
	reopened.SetNow(func() time.Time { return testNow })
	if seeded := reopened.Load(); seeded {
		t.Fatal("well-formed snapshot was replaced by the seed set")
	}
	if reopened.Get(created.ID) == nil {
		t.Error("created task missing after reload")
	}
}

func TestCreatePrependsAndStamps(t *testing.T) {
	s := openTestStore(t)
	s.Load()

	created, err := s.Create(&task.Task{Title: "New one", Priority: task.PriorityHigh, Completed: true})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Error("Create did not assign an id")
	}
	if created.Completed || created.CompletedAt != nil {
		t.Error("Create must force the task incomplete")
	}
	if !created.CreatedAt.Equal(testNow) || !created.UpdatedAt.Equal(testNow) {
		t.Error("Create did not stamp timestamps")
	}
	if s.Tasks()[0].ID != created.ID {
		t.Error("new task is not first in the collection")
	}
}

func TestUpdateMissingIsNoOp(t *testing.T) {
	s := openTestStore(t)
	s.Load()
	before := s.Len()

	if err := s.Update("no-such-id", func(tk *task.Task) {
		tk.Title = "never applied"
	}); err != nil {
		t.Fatalf("update of missing id errored: %v", err)
	}
	if s.Len() != before {
		t.Error("update of missing id changed the collection")
	}
}

func TestToggleCompletionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	s.Load()
	id := s.Tasks()[0].ID

	if err := s.ToggleCompletion(id); err != nil {
		t.Fatal(err)
	}
	tk := s.Get(id)
	if !tk.Completed || tk.CompletedAt == nil {
		t.Fatal("first toggle must complete and stamp the task")
	}
	if !tk.CompletedAt.Equal(testNow) {
		t.Errorf("CompletedAt = %v, want %v", tk.CompletedAt, testNow)
	}

	if err := s.ToggleCompletion(id); err != nil {
		t.Fatal(err)
	}
	tk = s.Get(id)
	if tk.Completed || tk.CompletedAt != nil {
		t.Error("second toggle must reopen and clear CompletedAt")
	}
}

func TestToggleSubtaskFlipsExactlyOne(t *testing.T) {
	s := openTestStore(t)
	s.Load()

	var target *task.Task
	for _, tk := range s.Tasks() {
		if len(tk.Subtasks) >= 2 {
			target = tk
			break
		}
	}
	if target == nil {
		t.Fatal("seed has no task with two subtasks")
	}

	before := make(map[string]bool)
	for _, sub := range target.Subtasks {
		before[sub.ID] = sub.Completed
	}
	flipped := target.Subtasks[1].ID

	if err := s.ToggleSubtask(target.ID, flipped); err != nil {
		t.Fatal(err)
	}
	after := s.Get(target.ID)
	if after.Completed {
		t.Error("toggling a subtask must not complete the parent")
	}
	for _, sub := range after.Subtasks {
		want := before[sub.ID]
		if sub.ID == flipped {
			want = !want
		}
		if sub.Completed != want {
			t.Errorf("subtask %s completed = %v, want %v", sub.ID, sub.Completed, want)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	s.Load()
	id := s.Tasks()[0].ID
	before := s.Len()

	if err := s.Delete(id); err != nil {
		t.Fatal(err)
	}
	if s.Len() != before-1 || s.Get(id) != nil {
		t.Error("delete did not remove the task")
	}
	if err := s.Delete(id); err != nil {
		t.Errorf("second delete errored: %v", err)
	}
}

func TestSetImageClearsHint(t *testing.T) {
	s := openTestStore(t)
	s.Load()

	var id string
	for _, tk := range s.Tasks() {
		if tk.DataAIHint != "" {
			id = tk.ID
			break
		}
	}
	if id == "" {
		t.Fatal("seed has no task with an image hint")
	}

	if err := s.SetImage(id, "data:image/png;base64,xyz"); err != nil {
		t.Fatal(err)
	}
	tk := s.Get(id)
	if tk.ImageURL != "data:image/png;base64,xyz" {
		t.Errorf("ImageURL = %q", tk.ImageURL)
	}
	if tk.DataAIHint != "" {
		t.Error("setting an image must clear the AI hint")
	}
}

func TestSubscribeFiresOnMutation(t *testing.T) {
	s := openTestStore(t)
	s.Load()

	calls := 0
	s.Subscribe(func() { calls++ })

	if _, err := s.Create(&task.Task{Title: "Ping", Priority: task.PriorityLow}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("subscriber calls = %d, want 1", calls)
	}
}
