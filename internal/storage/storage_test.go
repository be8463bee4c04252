package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestPutGetRoundTrip(t *testing.T) {
	st := openTestStorage(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	want := payload{Name: "groceries", Count: 3}
	if err := st.Put("example", want); err != nil {
		t.Fatal(err)
	}

	var got payload
	ok, err := st.Get("example", &got)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Get reported missing for a stored key")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGetMissingKey(t *testing.T) {
	st := openTestStorage(t)

	var v map[string]any
	ok, err := st.Get("absent", &v)
	if err != nil {
		t.Fatalf("missing key must not error: %v", err)
	}
	if ok {
		t.Error("Get reported ok for a missing key")
	}
	if v != nil {
		t.Error("Get touched the destination for a missing key")
	}
}

func TestGetMalformedPayload(t *testing.T) {
	st := openTestStorage(t)
	if err := os.WriteFile(filepath.Join(st.Dir(), "broken.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	var v any
	if _, err := st.Get("broken", &v); err == nil {
		t.Error("malformed JSON must surface an error")
	}
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	st := openTestStorage(t)
	if err := st.Put("tasks", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(st.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("state dir contents = %v, want only tasks.json", names)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	st := openTestStorage(t)
	if err := st.Put("gone", 42); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete("gone"); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete("gone"); err != nil {
		t.Errorf("second delete errored: %v", err)
	}

	var v int
	if ok, _ := st.Get("gone", &v); ok {
		t.Error("key still readable after delete")
	}
}
