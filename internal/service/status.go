package service

import (
	"context"
	"fmt"

	"github.com/convergenps/backend/internal/model"
)

const defaultFailureLimit = 100

// Exporter is the slice of the export engine the status service re-invokes on
// retry.
type Exporter interface {
	SyncOne(ctx context.Context, kind model.EntityKind, entityID string) model.SyncResult
}

// StatusService is the read side of the sync record log, plus the retry and
// clear operations.
type StatusService struct {
	store    Store
	exporter Exporter
}

func NewStatusService(store Store, exporter Exporter) *StatusService {
	return &StatusService{store: store, exporter: exporter}
}

// GetStatus reports, per export kind, how many records exist, how many are
// synced/pending/failed, and when the last successful sync completed.
func (s *StatusService) GetStatus(ctx context.Context) (map[model.EntityKind]model.KindStatus, error) {
	out := make(map[model.EntityKind]model.KindStatus, len(model.ExportKinds))
	for _, kind := range model.ExportKinds {
		total, err := s.countEntities(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("count %s records: %w", kind, err)
		}
		counts, err := s.store.SyncCounts(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("sync counts for %s: %w", kind, err)
		}
		out[kind] = model.KindStatus{
			Total:    total,
			Synced:   counts.Synced,
			Pending:  counts.Pending,
			Failed:   counts.Failed,
			LastSync: counts.LastSync,
		}
	}
	return out, nil
}

// GetFailedSyncs returns the most recent failed sync records.
func (s *StatusService) GetFailedSyncs(ctx context.Context, limit int) ([]model.SyncRecord, error) {
	if limit <= 0 {
		limit = defaultFailureLimit
	}
	return s.store.ListFailedSyncs(ctx, limit)
}

// Retry re-dispatches the sync a record describes. The lookup error (usually
// repository.ErrNotFound) is the only error path; the re-sync itself reports
// through the returned SyncResult.
func (s *StatusService) Retry(ctx context.Context, syncRecordID string) (model.SyncResult, error) {
	rec, err := s.store.GetSyncRecord(ctx, syncRecordID)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("sync record %s: %w", syncRecordID, err)
	}
	return s.exporter.SyncOne(ctx, rec.EntityKind, rec.EntityID), nil
}

// ClearFailed removes every failed sync record and reports how many were
// deleted. Administrative reset only; successful history is untouched.
func (s *StatusService) ClearFailed(ctx context.Context) (int64, error) {
	return s.store.DeleteFailedSyncs(ctx)
}

func (s *StatusService) countEntities(ctx context.Context, kind model.EntityKind) (int, error) {
	switch kind {
	case model.KindUser:
		return s.store.CountProfiles(ctx)
	case model.KindRSVP:
		return s.store.CountRSVPs(ctx)
	case model.KindConnection:
		return s.store.CountConnections(ctx)
	}
	return 0, fmt.Errorf("unhandled entity kind %q", kind)
}
