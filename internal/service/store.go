package service

import (
	"context"
	"time"

	"github.com/convergenps/backend/internal/model"
	"github.com/convergenps/backend/internal/smartsheet"
)

// Store is the narrow persistence contract the engines depend on. It is
// defined here, on the consumer side, so the engines can be tested against an
// in-memory fake; *repository.PostgresRepo satisfies it.
type Store interface {
	// export sources
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	CountProfiles(ctx context.Context) (int, error)
	GetRSVP(ctx context.Context, id string) (*model.RSVP, error)
	ListRSVPs(ctx context.Context) ([]model.RSVP, error)
	CountRSVPs(ctx context.Context) (int, error)
	GetConnection(ctx context.Context, id string) (*model.Connection, error)
	ListConnections(ctx context.Context) ([]model.Connection, error)
	CountConnections(ctx context.Context) (int, error)

	// sync log
	CreateSyncRecord(ctx context.Context, rec *model.SyncRecord) error
	GetSyncRecord(ctx context.Context, id string) (*model.SyncRecord, error)
	LatestSync(ctx context.Context, kind model.EntityKind, entityID string) (*model.SyncRecord, error)
	LatestSuccessfulSync(ctx context.Context, kind model.EntityKind, entityID string) (*model.SyncRecord, error)
	ListFailedSyncs(ctx context.Context, limit int) ([]model.SyncRecord, error)
	DeleteFailedSyncs(ctx context.Context) (int64, error)
	SyncCounts(ctx context.Context, kind model.EntityKind) (model.SyncCounts, error)

	// import targets
	FindSessionByTitleAndStart(ctx context.Context, title string, start time.Time) (*model.Session, error)
	CreateSession(ctx context.Context, s *model.Session) error
	UpdateSession(ctx context.Context, s *model.Session) error
	FindProject(ctx context.Context, title, classification, department string) (*model.Project, error)
	CreateProject(ctx context.Context, p *model.Project) error
	UpdateProject(ctx context.Context, p *model.Project) error
	FindOpportunity(ctx context.Context, title, sponsor string) (*model.Opportunity, error)
	CreateOpportunity(ctx context.Context, o *model.Opportunity) error
	UpdateOpportunity(ctx context.Context, o *model.Opportunity) error
	FindPartnerByName(ctx context.Context, name string) (*model.Partner, error)
	CreatePartner(ctx context.Context, p *model.Partner) error
	UpdatePartner(ctx context.Context, p *model.Partner) error
	FindProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	CreateProfile(ctx context.Context, p *model.Profile) error
	UpdateProfile(ctx context.Context, p *model.Profile) error
	CreateScanCode(ctx context.Context, sc *model.ScanCode) error
}

// SheetAPI is what the engines need from the Smartsheet client.
type SheetAPI interface {
	GetSheet(ctx context.Context, sheetID string) (*smartsheet.Sheet, error)
	AddRows(ctx context.Context, sheetID string, rows []smartsheet.Row) ([]int64, error)
	UpdateRow(ctx context.Context, sheetID string, rowID int64, row smartsheet.Row) error
}
