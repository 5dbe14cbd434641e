package service

import (
	"context"
	"fmt"
	"time"

	"github.com/convergenps/backend/internal/model"
	"github.com/convergenps/backend/internal/repository"
	"github.com/convergenps/backend/internal/smartsheet"
)

// memStore is an in-memory Store used by the engine tests.
type memStore struct {
	profiles    map[string]*model.Profile
	rsvps       map[string]*model.RSVP
	connections map[string]*model.Connection

	sessions      []*model.Session
	projects      []*model.Project
	opportunities []*model.Opportunity
	partners      []*model.Partner
	scanCodes     []*model.ScanCode

	syncRecords []*model.SyncRecord

	seq int
}

func newMemStore() *memStore {
	return &memStore{
		profiles:    make(map[string]*model.Profile),
		rsvps:       make(map[string]*model.RSVP),
		connections: make(map[string]*model.Connection),
	}
}

func (m *memStore) nextID() string {
	m.seq++
	return fmt.Sprintf("id-%d", m.seq)
}

func (m *memStore) GetProfile(_ context.Context, id string) (*model.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListProfiles(context.Context) ([]model.Profile, error) {
	out := make([]model.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memStore) CountProfiles(context.Context) (int, error) { return len(m.profiles), nil }

func (m *memStore) GetRSVP(_ context.Context, id string) (*model.RSVP, error) {
	if r, ok := m.rsvps[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListRSVPs(context.Context) ([]model.RSVP, error) {
	out := make([]model.RSVP, 0, len(m.rsvps))
	for _, r := range m.rsvps {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) CountRSVPs(context.Context) (int, error) { return len(m.rsvps), nil }

func (m *memStore) GetConnection(_ context.Context, id string) (*model.Connection, error) {
	if c, ok := m.connections[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListConnections(context.Context) ([]model.Connection, error) {
	out := make([]model.Connection, 0, len(m.connections))
	for _, c := range m.connections {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memStore) CountConnections(context.Context) (int, error) { return len(m.connections), nil }

func (m *memStore) CreateSyncRecord(_ context.Context, rec *model.SyncRecord) error {
	if rec.ID == "" {
		rec.ID = m.nextID()
	}
	cp := *rec
	m.syncRecords = append(m.syncRecords, &cp)
	return nil
}

func (m *memStore) GetSyncRecord(_ context.Context, id string) (*model.SyncRecord, error) {
	for _, rec := range m.syncRecords {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) LatestSync(_ context.Context, kind model.EntityKind, entityID string) (*model.SyncRecord, error) {
	for i := len(m.syncRecords) - 1; i >= 0; i-- {
		rec := m.syncRecords[i]
		if rec.EntityKind == kind && rec.EntityID == entityID {
			return rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) LatestSuccessfulSync(_ context.Context, kind model.EntityKind, entityID string) (*model.SyncRecord, error) {
	for i := len(m.syncRecords) - 1; i >= 0; i-- {
		rec := m.syncRecords[i]
		if rec.EntityKind == kind && rec.EntityID == entityID && rec.Status == model.SyncSuccess {
			return rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListFailedSyncs(_ context.Context, limit int) ([]model.SyncRecord, error) {
	var out []model.SyncRecord
	for i := len(m.syncRecords) - 1; i >= 0 && len(out) < limit; i-- {
		if m.syncRecords[i].Status == model.SyncFailed {
			out = append(out, *m.syncRecords[i])
		}
	}
	return out, nil
}

func (m *memStore) DeleteFailedSyncs(context.Context) (int64, error) {
	var kept []*model.SyncRecord
	var removed int64
	for _, rec := range m.syncRecords {
		if rec.Status == model.SyncFailed {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	m.syncRecords = kept
	return removed, nil
}

func (m *memStore) SyncCounts(_ context.Context, kind model.EntityKind) (model.SyncCounts, error) {
	latest := make(map[string]*model.SyncRecord)
	var counts model.SyncCounts
	for _, rec := range m.syncRecords {
		if rec.EntityKind != kind {
			continue
		}
		latest[rec.EntityID] = rec
		if rec.Status == model.SyncSuccess && rec.CompletedAt != nil {
			if counts.LastSync == nil || rec.CompletedAt.After(*counts.LastSync) {
				counts.LastSync = rec.CompletedAt
			}
		}
	}
	for _, rec := range latest {
		switch rec.Status {
		case model.SyncSuccess:
			counts.Synced++
		case model.SyncPending:
			counts.Pending++
		case model.SyncFailed:
			counts.Failed++
		}
	}
	return counts, nil
}

func (m *memStore) FindSessionByTitleAndStart(_ context.Context, title string, start time.Time) (*model.Session, error) {
	for _, s := range m.sessions {
		if s.Title == title && s.StartTime.Equal(start) {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) CreateSession(_ context.Context, s *model.Session) error {
	if s.ID == "" {
		s.ID = m.nextID()
	}
	cp := *s
	m.sessions = append(m.sessions, &cp)
	return nil
}

func (m *memStore) UpdateSession(_ context.Context, s *model.Session) error {
	for i, old := range m.sessions {
		if old.ID == s.ID {
			cp := *s
			m.sessions[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) FindProject(_ context.Context, title, classification, department string) (*model.Project, error) {
	for _, p := range m.projects {
		if p.Title == title && p.Classification == classification && p.Department == department {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) CreateProject(_ context.Context, p *model.Project) error {
	if p.ID == "" {
		p.ID = m.nextID()
	}
	cp := *p
	m.projects = append(m.projects, &cp)
	return nil
}

func (m *memStore) UpdateProject(_ context.Context, p *model.Project) error {
	for i, old := range m.projects {
		if old.ID == p.ID {
			cp := *p
			m.projects[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) FindOpportunity(_ context.Context, title, sponsor string) (*model.Opportunity, error) {
	for _, o := range m.opportunities {
		if o.Title == title && o.SponsorOrganization == sponsor {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) CreateOpportunity(_ context.Context, o *model.Opportunity) error {
	if o.ID == "" {
		o.ID = m.nextID()
	}
	cp := *o
	m.opportunities = append(m.opportunities, &cp)
	return nil
}

func (m *memStore) UpdateOpportunity(_ context.Context, o *model.Opportunity) error {
	for i, old := range m.opportunities {
		if old.ID == o.ID {
			cp := *o
			m.opportunities[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) FindPartnerByName(_ context.Context, name string) (*model.Partner, error) {
	for _, p := range m.partners {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) CreatePartner(_ context.Context, p *model.Partner) error {
	if p.ID == "" {
		p.ID = m.nextID()
	}
	cp := *p
	m.partners = append(m.partners, &cp)
	return nil
}

func (m *memStore) UpdatePartner(_ context.Context, p *model.Partner) error {
	for i, old := range m.partners {
		if old.ID == p.ID {
			cp := *p
			m.partners[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) FindProfileByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) CreateProfile(_ context.Context, p *model.Profile) error {
	if p.ID == "" {
		p.ID = m.nextID()
	}
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *memStore) UpdateProfile(_ context.Context, p *model.Profile) error {
	if _, ok := m.profiles[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	m.profiles[p.ID] = &cp
	return nil
}

func (m *memStore) CreateScanCode(_ context.Context, sc *model.ScanCode) error {
	if sc.ID == "" {
		sc.ID = m.nextID()
	}
	cp := *sc
	m.scanCodes = append(m.scanCodes, &cp)
	return nil
}

var _ Store = (*memStore)(nil)

// fakeSheetAPI is a scripted SheetAPI for the engine tests.
type fakeSheetAPI struct {
	sheets map[string]*smartsheet.Sheet
	getErr error

	nextRowID    int64
	addErr       error
	updateErr    error
	failForValue string

	addCalls    []addCall
	updateCalls []updateCall
}

type addCall struct {
	sheetID string
	rows    []smartsheet.Row
}

type updateCall struct {
	sheetID string
	rowID   int64
	row     smartsheet.Row
}

func newFakeSheetAPI() *fakeSheetAPI {
	return &fakeSheetAPI{
		sheets:    make(map[string]*smartsheet.Sheet),
		nextRowID: 1000,
	}
}

func (f *fakeSheetAPI) GetSheet(_ context.Context, sheetID string) (*smartsheet.Sheet, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if sheet, ok := f.sheets[sheetID]; ok {
		return sheet, nil
	}
	return nil, &smartsheet.TransportError{Op: "get sheet " + sheetID, Err: fmt.Errorf("not found")}
}

func (f *fakeSheetAPI) AddRows(_ context.Context, sheetID string, rows []smartsheet.Row) ([]int64, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	for _, row := range rows {
		for _, cell := range row.Cells {
			if f.failForValue != "" && cell.Value == f.failForValue {
				return nil, &smartsheet.TransportError{Op: "add rows", Err: fmt.Errorf("rejected %v", cell.Value)}
			}
		}
	}
	f.addCalls = append(f.addCalls, addCall{sheetID: sheetID, rows: rows})
	ids := make([]int64, 0, len(rows))
	for range rows {
		f.nextRowID++
		ids = append(ids, f.nextRowID)
	}
	return ids, nil
}

func (f *fakeSheetAPI) UpdateRow(_ context.Context, sheetID string, rowID int64, row smartsheet.Row) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updateCalls = append(f.updateCalls, updateCall{sheetID: sheetID, rowID: rowID, row: row})
	return nil
}

var _ SheetAPI = (*fakeSheetAPI)(nil)

// sheetOf builds a Sheet from a header row and data rows, numbering columns
// and rows the way Smartsheet does.
func sheetOf(headers []string, rows ...[]string) *smartsheet.Sheet {
	sheet := &smartsheet.Sheet{Name: "test", TotalRowCount: len(rows)}
	for i, h := range headers {
		sheet.Columns = append(sheet.Columns, smartsheet.Column{
			ID: int64(i + 1), Title: h, Type: "TEXT_NUMBER",
		})
	}
	for rowIdx, values := range rows {
		row := smartsheet.SheetRow{ID: int64(9000 + rowIdx), RowNumber: rowIdx + 1}
		for colIdx, v := range values {
			row.Cells = append(row.Cells, smartsheet.SheetCell{
				ColumnID: int64(colIdx + 1), Value: v,
			})
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}
