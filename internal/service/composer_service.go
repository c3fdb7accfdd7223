package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
)

// ComposerService keeps draft submissions between requests. Each draft belongs
// to one site and lives until it is submitted, cancelled or left idle past the
// TTL. Expired drafts are dropped lazily on the next access.
type ComposerService struct {
	mu     sync.Mutex
	drafts map[string]*models.Draft
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewComposerService constructs a ComposerService.
func NewComposerService(ttl time.Duration, logger *zap.Logger) *ComposerService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComposerService{
		drafts: make(map[string]*models.Draft),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Create opens an empty draft for site.
func (s *ComposerService) Create(site string) models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()

	now := s.now().UTC()
	draft := &models.Draft{
		ID:         uuid.NewString(),
		Site:       site,
		SpareParts: []models.SparePart{},
		Steps:      []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.drafts[draft.ID] = draft
	s.logger.Debug("draft opened", zap.String("site", site), zap.String("draft_id", draft.ID))
	return draft.Snapshot()
}

// Get returns the current state of a draft.
func (s *ComposerService) Get(site, id string) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookupLocked(site, id)
	if err != nil {
		return models.Draft{}, err
	}
	return draft.Snapshot(), nil
}

// AddSparePart appends entry to the draft. Entries without a part number or
// name are ignored; the returned flag reports whether the entry was kept.
func (s *ComposerService) AddSparePart(site, id string, entry models.SparePart) (models.Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookupLocked(site, id)
	if err != nil {
		return models.Draft{}, false, err
	}
	added := draft.AddSparePart(entry)
	if added {
		draft.UpdatedAt = s.now().UTC()
	}
	return draft.Snapshot(), added, nil
}

// AddStep appends a troubleshooting step. Blank text is ignored.
func (s *ComposerService) AddStep(site, id, text string) (models.Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookupLocked(site, id)
	if err != nil {
		return models.Draft{}, false, err
	}
	added := draft.AddStep(text)
	if added {
		draft.UpdatedAt = s.now().UTC()
	}
	return draft.Snapshot(), added, nil
}

// Cancel discards a draft at the user's request.
func (s *ComposerService) Cancel(site, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.lookupLocked(site, id)
	if err != nil {
		return err
	}
	draft.Clear()
	delete(s.drafts, id)
	return nil
}

// Complete clears and closes a draft once its submission has been stored.
func (s *ComposerService) Complete(site, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if draft, ok := s.drafts[id]; ok && draft.Site == site {
		draft.Clear()
		delete(s.drafts, id)
	}
}

func (s *ComposerService) lookupLocked(site, id string) (*models.Draft, error) {
	s.sweepLocked()
	draft, ok := s.drafts[id]
	if !ok || draft.Site != site {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
	}
	return draft, nil
}

func (s *ComposerService) sweepLocked() {
	cutoff := s.now().UTC().Add(-s.ttl)
	for id, draft := range s.drafts {
		if draft.UpdatedAt.Before(cutoff) {
			delete(s.drafts, id)
			s.logger.Debug("draft expired", zap.String("site", draft.Site), zap.String("draft_id", id))
		}
	}
}
