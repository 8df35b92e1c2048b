package services

import (
	"encoding/json"
	"log/slog"

	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
	"github.com/reglet-dev/stitch/internal/application/ports"
	"github.com/reglet-dev/stitch/internal/domain/entities"
	"github.com/reglet-dev/stitch/internal/domain/values"
)

// Ensure interface compliance
var _ ports.SnapshotRepository = (*SnapshotStore)(nil)

// SnapshotStore saves and restores configuration snapshots in session storage.
// Every failure is logged and swallowed: persistence is an optimization.
type SnapshotStore struct {
	storage   ports.SessionStorage
	validator ports.SnapshotValidator
	logger    *slog.Logger
}

// NewSnapshotStore creates a snapshot store. validator may be nil.
func NewSnapshotStore(storage ports.SessionStorage, validator ports.SnapshotValidator, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{
		storage:   storage,
		validator: validator,
		logger:    logger,
	}
}

// Save writes the snapshot for a subject.
func (s *SnapshotStore) Save(subject values.SubjectID, cfg entities.Configuration) {
	key := entities.SnapshotKey(subject)

	data, err := json.Marshal(entities.SnapshotOf(cfg))
	if err != nil {
		s.warn(apperrors.NewPersistenceError("encode", key, err))
		return
	}

	if err := s.storage.SetItem(key, string(data)); err != nil {
		s.warn(apperrors.NewPersistenceError("save", key, err))
		return
	}
	s.logger.Debug("snapshot saved", "key", key, "bytes", len(data))
}

// Load reads the snapshot for a subject. Missing, unreadable or malformed
// snapshots all report false.
func (s *SnapshotStore) Load(subject values.SubjectID) (entities.Configuration, bool) {
	key := entities.SnapshotKey(subject)

	raw, ok, err := s.storage.GetItem(key)
	if err != nil {
		s.warn(apperrors.NewPersistenceError("load", key, err))
		return entities.Configuration{}, false
	}
	if !ok {
		return entities.Configuration{}, false
	}

	if s.validator != nil {
		if err := s.validator.ValidateSnapshot([]byte(raw)); err != nil {
			s.warn(apperrors.NewPersistenceError("validate", key, err))
			return entities.Configuration{}, false
		}
	}

	var snap entities.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.warn(apperrors.NewPersistenceError("decode", key, err))
		return entities.Configuration{}, false
	}

	s.logger.Debug("snapshot loaded", "key", key)
	return snap.Configuration(), true
}

func (s *SnapshotStore) warn(err *apperrors.PersistenceError) {
	s.logger.Warn("snapshot persistence failed", "op", err.Op, "key", err.Key, "error", err.Cause)
}
