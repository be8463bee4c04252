package suggest

import (
	"github.com/taskwise-ai/taskwise/internal/storage"
)

// Session persistence for staged suggestions. The CLI has no long-lived
// process, so an edit session spans several invocations: `assist` stages
// fields here, `create`/`edit` consume them, and closing the session clears
// the slot. Slots are keyed by task id; NewTaskKey is the slot for a task
// that does not exist yet.
const NewTaskKey = ""

type sessions map[string]Staging

// LoadSession returns the staged suggestions for the given task id.
func LoadSession(st *storage.Storage, taskID string) (Staging, error) {
	var all sessions
	if _, err := st.Get(storage.KeySuggestions, &all); err != nil {
		return Staging{}, err
	}
	return all[taskID], nil
}

// StageSession merges incoming fields into the task's staged slot. The last
// writer wins per field; there are no generation counters.
func StageSession(st *storage.Storage, taskID string, in Staging) error {
	var all sessions
	if _, err := st.Get(storage.KeySuggestions, &all); err != nil {
		return err
	}
	if all == nil {
		all = sessions{}
	}
	staged := all[taskID]
	staged.Merge(in)
	all[taskID] = staged
	return st.Put(storage.KeySuggestions, all)
}

// ClearSession drops the task's staged slot, removing the state key when no
// sessions remain.
func ClearSession(st *storage.Storage, taskID string) error {
	var all sessions
	ok, err := st.Get(storage.KeySuggestions, &all)
	if err != nil || !ok {
		return err
	}
	delete(all, taskID)
	if len(all) == 0 {
		return st.Delete(storage.KeySuggestions)
	}
	return st.Put(storage.KeySuggestions, all)
}
