package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "recent.json")
}

func TestRecentStoreAddAndList(t *testing.T) {
	s := NewRecentStore(tempStorePath(t))

	s.Add("Austin")
	s.Add("Denver")

	got := s.List()
	want := []string{"Denver", "Austin"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v (most recent first)", got, want)
	}
}

func TestRecentStoreDedupesCaseInsensitively(t *testing.T) {
	s := NewRecentStore(tempStorePath(t))

	s.Add("Austin")
	s.Add("Denver")
	s.Add("austin")

	got := s.List()
	want := []string{"austin", "Denver"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRecentStoreCapsAtFive(t *testing.T) {
	s := NewRecentStore(tempStorePath(t))

	for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
		s.Add(q)
	}

	got := s.List()
	want := []string{"f", "e", "d", "c", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRecentStoreIgnoresBlankQueries(t *testing.T) {
	s := NewRecentStore(tempStorePath(t))

	s.Add("   ")
	s.Add("")

	if got := s.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestRecentStorePersistsAcrossLoads(t *testing.T) {
	path := tempStorePath(t)

	s := NewRecentStore(path)
	s.Add("Austin")
	s.Add("78701")

	reloaded := NewRecentStore(path)
	got := reloaded.List()
	want := []string{"78701", "Austin"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded List() = %v, want %v", got, want)
	}
}

func TestRecentStoreFailsOpenOnCorruptedFile(t *testing.T) {
	path := tempStorePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewRecentStore(path)
	if got := s.List(); len(got) != 0 {
		t.Errorf("corrupted file should load as empty, got %v", got)
	}

	// The store must still be usable afterwards.
	s.Add("Austin")
	if got := s.List(); len(got) != 1 || got[0] != "Austin" {
		t.Errorf("List() after corrupted load = %v, want [Austin]", got)
	}
}

func TestRecentStoreMissingFileIsEmpty(t *testing.T) {
	s := NewRecentStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if got := s.List(); len(got) != 0 {
		t.Errorf("missing file should load as empty, got %v", got)
	}
}
