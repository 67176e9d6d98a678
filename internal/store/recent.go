package store

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"
)

// maxRecent bounds the recent-search list.
const maxRecent = 5

// RecentStore keeps the most recent successful search queries, newest first,
// de-duplicated case-insensitively, persisted as a small JSON file. It is an
// explicit state object: the file is read once at construction and rewritten
// after every Add. Persistence is fail-open — a missing or corrupted file
// loads as empty and write failures are logged and swallowed, never surfaced.
type RecentStore struct {
	mu      sync.Mutex
	path    string
	entries []string
}

// NewRecentStore loads the store from path. It never fails: any read or
// parse problem yields an empty store.
func NewRecentStore(path string) *RecentStore {
	s := &RecentStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("INFO: ignoring corrupted recent-search file %s: %v", path, err)
		return s
	}
	if len(entries) > maxRecent {
		entries = entries[:maxRecent]
	}
	s.entries = entries
	return s
}

// Add records a successful search query at the front of the list, dropping
// any earlier case-insensitive duplicate, and rewrites the backing file.
func (s *RecentStore) Add(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]string, 0, maxRecent)
	kept = append(kept, query)
	for _, e := range s.entries {
		if strings.EqualFold(e, query) {
			continue
		}
		if len(kept) >= maxRecent {
			break
		}
		kept = append(kept, e)
	}
	s.entries = kept

	s.persistLocked()
}

// List returns the stored queries, most recent first.
func (s *RecentStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// persistLocked writes the list back to disk. Failures are not propagated;
// losing the recent list is preferable to failing a search.
func (s *RecentStore) persistLocked() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		log.Printf("ERROR: encoding recent searches: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("ERROR: writing recent searches to %s: %v", s.path, err)
	}
}
