package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/model"
)

// StoredArtifact is a generated report waiting to be downloaded
type StoredArtifact struct {
	ID        string
	Artifact  *model.Artifact
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ArtifactStore keeps generated reports in memory until they are downloaded or expire
type ArtifactStore struct {
	items        map[string]*StoredArtifact
	mu           sync.Mutex
	ttl          time.Duration
	maxArtifacts int // 0 = unlimited
	now          func() time.Time
}

func NewArtifactStore(cfg *config.DownloadsConfig) *ArtifactStore {
	maxArtifacts := cfg.MaxArtifacts
	if maxArtifacts < 0 {
		maxArtifacts = 0
	}
	return &ArtifactStore{
		items:        make(map[string]*StoredArtifact),
		ttl:          time.Duration(cfg.TTLMinutes) * time.Minute,
		maxArtifacts: maxArtifacts,
		now:          time.Now,
	}
}

// TTL is how long a stored artifact stays downloadable
func (s *ArtifactStore) TTL() time.Duration {
	return s.ttl
}

// Put stores artifact under a new id
func (s *ArtifactStore) Put(artifact *model.Artifact) *StoredArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	item := &StoredArtifact{
		ID:        uuid.New().String(),
		Artifact:  artifact,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.items[item.ID] = item

	s.cleanupIfNeeded()
	return item
}

// Get returns the artifact stored under id, or nil when unknown or expired
func (s *ArtifactStore) Get(id string) *StoredArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil
	}
	if s.now().After(item.ExpiresAt) {
		delete(s.items, id)
		return nil
	}
	return item
}

// Take returns and removes the artifact stored under id
func (s *ArtifactStore) Take(id string) *StoredArtifact {
	item := s.Get(id)
	if item != nil {
		s.Delete(id)
	}
	return item
}

func (s *ArtifactStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Count returns the number of artifacts in the store
func (s *ArtifactStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *ArtifactStore) purgeExpiredLocked(now time.Time) {
	for id, item := range s.items {
		if now.After(item.ExpiresAt) {
			delete(s.items, id)
		}
	}
}

// cleanupIfNeeded evicts the oldest artifacts beyond maxArtifacts.
// Must be called with lock held.
func (s *ArtifactStore) cleanupIfNeeded() {
	if s.maxArtifacts <= 0 || len(s.items) <= s.maxArtifacts {
		return
	}

	items := make([]*StoredArtifact, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	removeCount := len(items) - s.maxArtifacts
	for i := 0; i < removeCount; i++ {
		slog.Info("evicting undownloaded report",
			"artifact_id", items[i].ID,
			"filename", items[i].Artifact.Filename,
			"created_at", items[i].CreatedAt,
		)
		delete(s.items, items[i].ID)
	}
}
