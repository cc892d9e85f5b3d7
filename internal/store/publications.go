package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dpgpid/internal/domain"
)

const publicationsFile = "publications.json"

// maxHistory bounds the entries kept per key.
const maxHistory = 32

// PublicationLog is a domain.PublicationLog stored as one JSON file mapping
// each KeyID to its publications, oldest first.
type PublicationLog struct {
	dir string
	mu  sync.Mutex
}

var _ domain.PublicationLog = (*PublicationLog)(nil)

// NewPublicationLog keeps its file in dir, created 0700 on first write.
func NewPublicationLog(dir string) *PublicationLog { return &PublicationLog{dir: dir} }

func (l *PublicationLog) path() string { return filepath.Join(l.dir, publicationsFile) }

func (l *PublicationLog) load() (map[domain.KeyID][]domain.Publication, error) {
	entries := map[domain.KeyID][]domain.Publication{}
	if _, err := loadJSON(l.path(), &entries); err != nil {
		return nil, fmt.Errorf("read publication log: %w", err)
	}
	return entries, nil
}

// Last returns the newest publication recorded for id.
func (l *PublicationLog) Last(id domain.KeyID) (domain.Publication, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return domain.Publication{}, false, err
	}
	list := entries[id]
	if len(list) == 0 {
		return domain.Publication{}, false, nil
	}
	return list[len(list)-1], true, nil
}

// History returns every publication recorded for id, oldest first.
func (l *PublicationLog) History(id domain.KeyID) ([]domain.Publication, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return nil, err
	}
	return entries[id], nil
}

// Record appends p to the log.
func (l *PublicationLog) Record(p domain.Publication) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	list := append(entries[p.KeyID], p)
	if len(list) > maxHistory {
		list = list[len(list)-maxHistory:]
	}
	entries[p.KeyID] = list

	if err := os.MkdirAll(l.dir, stateDirMode); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := saveJSON(l.path(), entries, SecretFileMode); err != nil {
		return fmt.Errorf("write publication log: %w", err)
	}
	return nil
}
