package storage

import (
	"fmt"
	"sort"
	"time"

	"ironpulse/local-app/internal/model"
)

// EntryStore defines the per-user entry log operations. Logs are ordered most
// recent first and entries are never modified in place.
type EntryStore interface {
	EntriesGet(username string) (model.EntryList, error)
	EntryAppend(username string, entry model.Entry) (model.EntryList, error)
	EntryDelete(username, id string) (model.EntryList, bool, error)
	EntryDeleteByTimestamp(username string, ts time.Time) (model.EntryList, int, error)
	EntriesMerge(username string, entries model.EntryList) (int, error)
	EntryClear(username string) error
}

// EntryStorage implements the EntryStore interface.
type EntryStorage struct {
	storage *Storage
}

// NewEntryStorage creates a new EntryStorage instance.
func NewEntryStorage(storage *Storage) *EntryStorage {
	return &EntryStorage{storage: storage}
}

// EntriesGet returns the user's log, empty when nothing has been logged
func (s *EntryStorage) EntriesGet(username string) (model.EntryList, error) {
	return s.storage.entriesRead(username)
}

// EntryAppend prepends entry to the user's log and returns the new log
func (s *EntryStorage) EntryAppend(username string, entry model.Entry) (model.EntryList, error) {
	var list model.EntryList
	err := s.storage.withTx(func() error {
		current, err := s.storage.entriesRead(username)
		if err != nil {
			return err
		}
		list = append(model.EntryList{entry}, current...)
		return s.storage.entriesWrite(username, list)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append entry: %w", err)
	}
	return list, nil
}

// EntryDelete removes the entry with the given id. The bool reports whether one was found.
func (s *EntryStorage) EntryDelete(username, id string) (model.EntryList, bool, error) {
	list, removed, err := s.storage.entriesRemove(username, func(e model.Entry) bool {
		return e.EntryID() == id
	})
	return list, removed > 0, err
}

// EntryDeleteByTimestamp removes every entry logged at ts and returns how many went.
// Every match is removed, not only the first.
func (s *EntryStorage) EntryDeleteByTimestamp(username string, ts time.Time) (model.EntryList, int, error) {
	return s.storage.entriesRemove(username, func(e model.Entry) bool {
		return e.EntryTime().Equal(ts)
	})
}

// EntriesMerge adds entries whose id is not already in the log, then
// reorders the log most recent first. It returns how many were added.
func (s *EntryStorage) EntriesMerge(username string, entries model.EntryList) (int, error) {
	added := 0
	err := s.storage.withTx(func() error {
		current, err := s.storage.entriesRead(username)
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(current))
		for _, e := range current {
			seen[e.EntryID()] = true
		}
		merged := append(model.EntryList{}, current...)
		for _, e := range entries {
			if seen[e.EntryID()] {
				continue
			}
			seen[e.EntryID()] = true
			merged = append(merged, e)
			added++
		}
		if added == 0 {
			return nil
		}
		sortNewestFirst(merged)
		return s.storage.entriesWrite(username, merged)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to merge entries: %w", err)
	}
	return added, nil
}

// EntryClear removes the user's whole log
func (s *EntryStorage) EntryClear(username string) error {
	if err := s.storage.db.Delete(s.storage.keys.Entries(username)); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

func (s *Storage) entriesRead(username string) (model.EntryList, error) {
	var list model.EntryList
	found, err := s.readJSON(s.keys.Entries(username), &list)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	if !found || list == nil {
		return model.EntryList{}, nil
	}
	return list, nil
}

func (s *Storage) entriesWrite(username string, list model.EntryList) error {
	if list == nil {
		list = model.EntryList{}
	}
	return s.writeJSON(s.keys.Entries(username), list)
}

func (s *Storage) entriesRemove(username string, match func(model.Entry) bool) (model.EntryList, int, error) {
	var (
		kept    model.EntryList
		removed int
	)
	err := s.withTx(func() error {
		current, err := s.entriesRead(username)
		if err != nil {
			return err
		}
		kept = make(model.EntryList, 0, len(current))
		for _, e := range current {
			if match(e) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if removed == 0 {
			return nil
		}
		return s.entriesWrite(username, kept)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to delete entries: %w", err)
	}
	return kept, removed, nil
}

// sortNewestFirst orders by timestamp descending, keeping the relative order of ties
func sortNewestFirst(list model.EntryList) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].EntryTime().After(list[j].EntryTime())
	})
}
