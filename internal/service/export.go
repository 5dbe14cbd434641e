package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/convergenps/backend/internal/config"
	"github.com/convergenps/backend/internal/model"
	"github.com/convergenps/backend/internal/repository"
	"github.com/convergenps/backend/internal/smartsheet"
)

// ExportService pushes internal records to their Smartsheet export sheets.
// Every outbound call goes through the shared request queue, and every
// attempt, success or failure, is appended to the sync record log.
type ExportService struct {
	store  Store
	sheets SheetAPI
	queue  *smartsheet.RequestQueue
	cfg    *config.Config
	now    func() time.Time
}

func NewExportService(store Store, sheets SheetAPI, queue *smartsheet.RequestQueue, cfg *config.Config) *ExportService {
	return &ExportService{
		store:  store,
		sheets: sheets,
		queue:  queue,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SyncOne exports a single entity. It never returns a business error: every
// failure path is captured in the result and in a failed sync record, because
// batch callers must be able to continue past individual failures.
func (s *ExportService) SyncOne(ctx context.Context, kind model.EntityKind, entityID string) model.SyncResult {
	started := s.now()
	result := model.SyncResult{EntityKind: kind, EntityID: entityID}

	rowID, err := s.pushEntity(ctx, kind, entityID)
	if err != nil {
		result.Error = err.Error()
		s.appendRecord(ctx, kind, entityID, started, model.SyncFailed, nil, err.Error())
		return result
	}

	result.Success = true
	result.RowID = rowID
	s.appendRecord(ctx, kind, entityID, started, model.SyncSuccess, rowID, "")
	return result
}

// SyncAll exports every record of a kind, sequentially so the shared rate
// limit holds, and aggregates the outcome.
func (s *ExportService) SyncAll(ctx context.Context, kind model.EntityKind) (*model.BatchSyncResult, error) {
	ids, err := s.listEntityIDs(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s records: %w", kind, err)
	}

	out := &model.BatchSyncResult{Total: len(ids)}
	for _, id := range ids {
		res := s.SyncOne(ctx, kind, id)
		if res.Success {
			out.Successful++
		} else {
			out.Failed++
			out.Errors = append(out.Errors, res)
		}
	}
	log.Printf("sync all %s: %d total, %d ok, %d failed", kind, out.Total, out.Successful, out.Failed)
	return out, nil
}

// pushEntity loads, maps and sends one record, returning the sheet row id it
// ended up in. A prior successful sync with a row id turns the call into an
// update instead of a duplicate create.
func (s *ExportService) pushEntity(ctx context.Context, kind model.EntityKind, entityID string) (*int64, error) {
	row, err := s.loadRow(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	sheetID := s.sheetIDFor(kind)
	if sheetID == "" {
		return nil, &smartsheet.ConfigurationError{Setting: string(kind) + " sheet id"}
	}

	prior, err := s.store.LatestSuccessfulSync(ctx, kind, entityID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("resolve prior sync: %w", err)
	}

	if prior != nil && prior.RowID != nil {
		rowID := *prior.RowID
		_, err = s.queue.Enqueue(func() (interface{}, error) {
			return nil, s.sheets.UpdateRow(ctx, sheetID, rowID, row)
		})
		if err != nil {
			return nil, err
		}
		return &rowID, nil
	}

	v, err := s.queue.Enqueue(func() (interface{}, error) {
		return s.sheets.AddRows(ctx, sheetID, []smartsheet.Row{row})
	})
	if err != nil {
		return nil, err
	}
	ids, _ := v.([]int64)
	if len(ids) == 0 {
		return nil, fmt.Errorf("add rows returned no row id")
	}
	return &ids[0], nil
}

// loadRow fetches the record and maps it. Each export kind has exactly one
// mapper; an unhandled kind is a programming error surfaced as one.
func (s *ExportService) loadRow(ctx context.Context, kind model.EntityKind, entityID string) (smartsheet.Row, error) {
	now := s.now()
	switch kind {
	case model.KindUser:
		p, err := s.store.GetProfile(ctx, entityID)
		if err != nil {
			return smartsheet.Row{}, lookupErr(kind, entityID, err)
		}
		return smartsheet.UserRow(p, now), nil
	case model.KindRSVP:
		r, err := s.store.GetRSVP(ctx, entityID)
		if err != nil {
			return smartsheet.Row{}, lookupErr(kind, entityID, err)
		}
		return smartsheet.RSVPRow(r, now), nil
	case model.KindConnection:
		c, err := s.store.GetConnection(ctx, entityID)
		if err != nil {
			return smartsheet.Row{}, lookupErr(kind, entityID, err)
		}
		return smartsheet.ConnectionRow(c, now), nil
	}
	return smartsheet.Row{}, fmt.Errorf("unhandled entity kind %q", kind)
}

func (s *ExportService) listEntityIDs(ctx context.Context, kind model.EntityKind) ([]string, error) {
	switch kind {
	case model.KindUser:
		profiles, err := s.store.ListProfiles(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(profiles))
		for _, p := range profiles {
			ids = append(ids, p.ID)
		}
		return ids, nil
	case model.KindRSVP:
		rsvps, err := s.store.ListRSVPs(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(rsvps))
		for _, r := range rsvps {
			ids = append(ids, r.ID)
		}
		return ids, nil
	case model.KindConnection:
		conns, err := s.store.ListConnections(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(conns))
		for _, c := range conns {
			ids = append(ids, c.ID)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("unhandled entity kind %q", kind)
}

func (s *ExportService) sheetIDFor(kind model.EntityKind) string {
	switch kind {
	case model.KindUser:
		return s.cfg.UsersSheetID
	case model.KindRSVP:
		return s.cfg.RSVPsSheetID
	case model.KindConnection:
		return s.cfg.ConnectionsSheetID
	}
	return ""
}

// appendRecord writes the attempt to the sync log. A retry of a failure
// carries the prior record's retry count plus one; the log itself is
// append-only, so the counter moves forward on the successor record.
func (s *ExportService) appendRecord(ctx context.Context, kind model.EntityKind, entityID string, started time.Time, status model.SyncStatus, rowID *int64, detail string) {
	retry := 0
	if latest, err := s.store.LatestSync(ctx, kind, entityID); err == nil && latest.Status == model.SyncFailed {
		retry = latest.RetryCount + 1
	}

	completed := s.now()
	rec := &model.SyncRecord{
		EntityKind:     kind,
		EntityID:       entityID,
		Direction:      model.DirectionUpload,
		Status:         status,
		RowID:          rowID,
		ErrorDetail:    detail,
		RetryCount:     retry,
		ProcessedCount: 1,
		TotalCount:     1,
		StartedAt:      started,
		CompletedAt:    &completed,
	}
	if err := s.store.CreateSyncRecord(ctx, rec); err != nil {
		log.Printf("failed writing sync record for %s %s: %v", kind, entityID, err)
	}
}

func lookupErr(kind model.EntityKind, entityID string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, entityID, repository.ErrNotFound)
	}
	return fmt.Errorf("load %s %s: %w", kind, entityID, err)
}
