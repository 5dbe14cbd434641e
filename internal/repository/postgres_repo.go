package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/convergenps/backend/internal/model"
)

type DBConfig struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepoFromConfig(cfg *DBConfig) (*PostgresRepo, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Pass, cfg.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// ping
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresRepo{DB: db}, nil
}

func (r *PostgresRepo) RunMigrations(ctx context.Context) error {
	queries := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
		`CREATE TABLE IF NOT EXISTS admins (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email VARCHAR(255) UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY,
            full_name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            organization TEXT,
            title TEXT,
            placeholder BOOLEAN DEFAULT FALSE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS partners (
            id UUID PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            organization_type TEXT,
            contact_name TEXT,
            contact_email TEXT,
            website TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS sessions (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            description TEXT,
            location TEXT,
            track TEXT,
            capacity INT DEFAULT 50,
            start_time TIMESTAMP WITH TIME ZONE NOT NULL,
            end_time TIMESTAMP WITH TIME ZONE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            UNIQUE (title, start_time)
        );`,
		`CREATE TABLE IF NOT EXISTS projects (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            classification TEXT NOT NULL,
            department TEXT,
            description TEXT,
            pi_profile_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
            partner_id UUID REFERENCES partners(id) ON DELETE SET NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS opportunities (
            id UUID PRIMARY KEY,
            title TEXT NOT NULL,
            sponsor_organization TEXT NOT NULL,
            opportunity_type TEXT,
            description TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS rsvps (
            id UUID PRIMARY KEY,
            profile_id UUID REFERENCES profiles(id) ON DELETE CASCADE,
            session_id UUID REFERENCES sessions(id) ON DELETE CASCADE,
            status TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS connections (
            id UUID PRIMARY KEY,
            requester_id UUID REFERENCES profiles(id) ON DELETE CASCADE,
            recipient_id UUID REFERENCES profiles(id) ON DELETE CASCADE,
            status TEXT,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS scan_codes (
            id UUID PRIMARY KEY,
            profile_id UUID REFERENCES profiles(id) ON DELETE CASCADE,
            code TEXT UNIQUE NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
        );`,
		`CREATE TABLE IF NOT EXISTS sync_records (
            id UUID PRIMARY KEY,
            entity_kind TEXT NOT NULL,
            entity_id TEXT NOT NULL,
            direction TEXT NOT NULL,
            status TEXT NOT NULL,
            row_id BIGINT,
            error_detail TEXT,
            retry_count INT DEFAULT 0,
            processed_count INT DEFAULT 0,
            total_count INT DEFAULT 0,
            started_at TIMESTAMP WITH TIME ZONE NOT NULL,
            completed_at TIMESTAMP WITH TIME ZONE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_sync_records_entity
            ON sync_records (entity_kind, entity_id, started_at DESC);`,
	}
	for _, q := range queries {
		if _, err := r.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// ---- admins ----

func (r *PostgresRepo) UpsertAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash) VALUES ($1,$2)
		ON CONFLICT (email) DO UPDATE SET password_hash = $2
	`, email, passwordHash)
	return err
}

func (r *PostgresRepo) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at
         FROM admins WHERE email = $1 LIMIT 1`, email)

	var a model.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	return &a, nil
}

// ---- profiles ----

const profileColumns = `id, full_name, email, organization, title, placeholder, created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*model.Profile, error) {
	var p model.Profile
	var org, title sql.NullString
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &org, &title, &p.Placeholder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	p.Organization = org.String
	p.Title = title.String
	return &p, nil
}

func (r *PostgresRepo) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

func (r *PostgresRepo) FindProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE LOWER(email) = LOWER($1) LIMIT 1`, email))
}

func (r *PostgresRepo) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CountProfiles(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM profiles`)
}

func (r *PostgresRepo) CreateProfile(ctx context.Context, p *model.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, email, organization, title, placeholder)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, p.ID, p.FullName, p.Email, p.Organization, p.Title, p.Placeholder)
	return err
}

func (r *PostgresRepo) UpdateProfile(ctx context.Context, p *model.Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET
			full_name = $2,
			email = $3,
			organization = $4,
			title = $5,
			placeholder = $6,
			updated_at = now()
		WHERE id = $1
	`, p.ID, p.FullName, p.Email, p.Organization, p.Title, p.Placeholder)
	return err
}

// ---- rsvps ----

func (r *PostgresRepo) GetRSVP(ctx context.Context, id string) (*model.RSVP, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, profile_id, session_id, status, created_at FROM rsvps WHERE id = $1`, id)
	var v model.RSVP
	var status sql.NullString
	if err := row.Scan(&v.ID, &v.ProfileID, &v.SessionID, &status, &v.CreatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	v.Status = status.String
	return &v, nil
}

func (r *PostgresRepo) ListRSVPs(ctx context.Context) ([]model.RSVP, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, profile_id, session_id, status, created_at FROM rsvps ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RSVP
	for rows.Next() {
		var v model.RSVP
		var status sql.NullString
		if err := rows.Scan(&v.ID, &v.ProfileID, &v.SessionID, &status, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Status = status.String
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CountRSVPs(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM rsvps`)
}

// ---- connections ----

func (r *PostgresRepo) GetConnection(ctx context.Context, id string) (*model.Connection, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, requester_id, recipient_id, status, created_at FROM connections WHERE id = $1`, id)
	var c model.Connection
	var status sql.NullString
	if err := row.Scan(&c.ID, &c.RequesterID, &c.RecipientID, &status, &c.CreatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	c.Status = status.String
	return &c, nil
}

func (r *PostgresRepo) ListConnections(ctx context.Context) ([]model.Connection, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, requester_id, recipient_id, status, created_at FROM connections ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Connection
	for rows.Next() {
		var c model.Connection
		var status sql.NullString
		if err := rows.Scan(&c.ID, &c.RequesterID, &c.RecipientID, &status, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Status = status.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) CountConnections(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM connections`)
}

// ---- sessions ----

func (r *PostgresRepo) FindSessionByTitleAndStart(ctx context.Context, title string, start time.Time) (*model.Session, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, description, location, track, capacity, start_time, end_time, created_at, updated_at
		FROM sessions WHERE title = $1 AND start_time = $2 LIMIT 1
	`, title, start)
	return scanSession(row)
}

func scanSession(row interface{ Scan(...interface{}) error }) (*model.Session, error) {
	var s model.Session
	var desc, loc, track sql.NullString
	var end sql.NullTime
	if err := row.Scan(&s.ID, &s.Title, &desc, &loc, &track, &s.Capacity, &s.StartTime, &end, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	s.Description = desc.String
	s.Location = loc.String
	s.Track = track.String
	if end.Valid {
		s.EndTime = end.Time
	}
	return &s, nil
}

func (r *PostgresRepo) CreateSession(ctx context.Context, s *model.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	var end interface{}
	if !s.EndTime.IsZero() {
		end = s.EndTime
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, title, description, location, track, capacity, start_time, end_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, s.ID, s.Title, s.Description, s.Location, s.Track, s.Capacity, s.StartTime, end)
	return err
}

func (r *PostgresRepo) UpdateSession(ctx context.Context, s *model.Session) error {
	var end interface{}
	if !s.EndTime.IsZero() {
		end = s.EndTime
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE sessions SET
			title = $2,
			description = $3,
			location = $4,
			track = $5,
			capacity = $6,
			start_time = $7,
			end_time = $8,
			updated_at = now()
		WHERE id = $1
	`, s.ID, s.Title, s.Description, s.Location, s.Track, s.Capacity, s.StartTime, end)
	return err
}

// ---- projects ----

func (r *PostgresRepo) FindProject(ctx context.Context, title, classification, department string) (*model.Project, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, classification, department, description, pi_profile_id, partner_id, created_at, updated_at
		FROM projects
		WHERE title = $1 AND classification = $2 AND COALESCE(department, '') = $3
		LIMIT 1
	`, title, classification, department)

	var p model.Project
	var dept, desc, pi, partner sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &p.Classification, &dept, &desc, &pi, &partner, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	p.Department = dept.String
	p.Description = desc.String
	p.PIProfileID = pi.String
	if partner.Valid {
		p.PartnerID = &partner.String
	}
	return &p, nil
}

func (r *PostgresRepo) CreateProject(ctx context.Context, p *model.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO projects (id, title, classification, department, description, pi_profile_id, partner_id)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7)
	`, p.ID, p.Title, p.Classification, p.Department, p.Description, p.PIProfileID, p.PartnerID)
	return err
}

func (r *PostgresRepo) UpdateProject(ctx context.Context, p *model.Project) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE projects SET
			title = $2,
			classification = $3,
			department = $4,
			description = $5,
			pi_profile_id = NULLIF($6,''),
			partner_id = $7,
			updated_at = now()
		WHERE id = $1
	`, p.ID, p.Title, p.Classification, p.Department, p.Description, p.PIProfileID, p.PartnerID)
	return err
}

// ---- opportunities ----

func (r *PostgresRepo) FindOpportunity(ctx context.Context, title, sponsor string) (*model.Opportunity, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, sponsor_organization, opportunity_type, description, created_at, updated_at
		FROM opportunities WHERE title = $1 AND sponsor_organization = $2 LIMIT 1
	`, title, sponsor)

	var o model.Opportunity
	var typ, desc sql.NullString
	if err := row.Scan(&o.ID, &o.Title, &o.SponsorOrganization, &typ, &desc, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	o.Type = typ.String
	o.Description = desc.String
	return &o, nil
}

func (r *PostgresRepo) CreateOpportunity(ctx context.Context, o *model.Opportunity) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO opportunities (id, title, sponsor_organization, opportunity_type, description)
		VALUES ($1,$2,$3,$4,$5)
	`, o.ID, o.Title, o.SponsorOrganization, o.Type, o.Description)
	return err
}

func (r *PostgresRepo) UpdateOpportunity(ctx context.Context, o *model.Opportunity) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE opportunities SET
			title = $2,
			sponsor_organization = $3,
			opportunity_type = $4,
			description = $5,
			updated_at = now()
		WHERE id = $1
	`, o.ID, o.Title, o.SponsorOrganization, o.Type, o.Description)
	return err
}

// ---- partners ----

func (r *PostgresRepo) FindPartnerByName(ctx context.Context, name string) (*model.Partner, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, organization_type, contact_name, contact_email, website, created_at, updated_at
		FROM partners WHERE LOWER(name) = LOWER($1) LIMIT 1
	`, name)

	var p model.Partner
	var orgType, cname, cemail, site sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &orgType, &cname, &cemail, &site, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	p.OrganizationType = orgType.String
	p.ContactName = cname.String
	p.ContactEmail = cemail.String
	p.Website = site.String
	return &p, nil
}

func (r *PostgresRepo) CreatePartner(ctx context.Context, p *model.Partner) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO partners (id, name, organization_type, contact_name, contact_email, website)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, p.ID, p.Name, p.OrganizationType, p.ContactName, p.ContactEmail, p.Website)
	return err
}

func (r *PostgresRepo) UpdatePartner(ctx context.Context, p *model.Partner) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE partners SET
			name = $2,
			organization_type = $3,
			contact_name = $4,
			contact_email = $5,
			website = $6,
			updated_at = now()
		WHERE id = $1
	`, p.ID, p.Name, p.OrganizationType, p.ContactName, p.ContactEmail, p.Website)
	return err
}

// ---- scan codes ----

func (r *PostgresRepo) CreateScanCode(ctx context.Context, sc *model.ScanCode) error {
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO scan_codes (id, profile_id, code) VALUES ($1,$2,$3)
	`, sc.ID, sc.ProfileID, sc.Code)
	return err
}

// ---- sync records ----

const syncRecordColumns = `id, entity_kind, entity_id, direction, status, row_id, error_detail,
	retry_count, processed_count, total_count, started_at, completed_at`

func (r *PostgresRepo) CreateSyncRecord(ctx context.Context, rec *model.SyncRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sync_records
			(id, entity_kind, entity_id, direction, status, row_id, error_detail,
			 retry_count, processed_count, total_count, started_at, completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, rec.ID, rec.EntityKind, rec.EntityID, rec.Direction, rec.Status, rec.RowID,
		rec.ErrorDetail, rec.RetryCount, rec.ProcessedCount, rec.TotalCount,
		rec.StartedAt, rec.CompletedAt)
	return err
}

func scanSyncRecord(row interface{ Scan(...interface{}) error }) (*model.SyncRecord, error) {
	var rec model.SyncRecord
	var rowID sql.NullInt64
	var detail sql.NullString
	var completed sql.NullTime
	if err := row.Scan(&rec.ID, &rec.EntityKind, &rec.EntityID, &rec.Direction, &rec.Status,
		&rowID, &detail, &rec.RetryCount, &rec.ProcessedCount, &rec.TotalCount,
		&rec.StartedAt, &completed); err != nil {
		return nil, mapScanErr(err)
	}
	if rowID.Valid {
		rec.RowID = &rowID.Int64
	}
	rec.ErrorDetail = detail.String
	if completed.Valid {
		rec.CompletedAt = &completed.Time
	}
	return &rec, nil
}

func (r *PostgresRepo) GetSyncRecord(ctx context.Context, id string) (*model.SyncRecord, error) {
	return scanSyncRecord(r.DB.QueryRowContext(ctx,
		`SELECT `+syncRecordColumns+` FROM sync_records WHERE id = $1`, id))
}

func (r *PostgresRepo) LatestSync(ctx context.Context, kind model.EntityKind, entityID string) (*model.SyncRecord, error) {
	return scanSyncRecord(r.DB.QueryRowContext(ctx, `
		SELECT `+syncRecordColumns+` FROM sync_records
		WHERE entity_kind = $1 AND entity_id = $2
		ORDER BY started_at DESC LIMIT 1
	`, kind, entityID))
}

func (r *PostgresRepo) LatestSuccessfulSync(ctx context.Context, kind model.EntityKind, entityID string) (*model.SyncRecord, error) {
	return scanSyncRecord(r.DB.QueryRowContext(ctx, `
		SELECT `+syncRecordColumns+` FROM sync_records
		WHERE entity_kind = $1 AND entity_id = $2 AND status = $3
		ORDER BY started_at DESC LIMIT 1
	`, kind, entityID, model.SyncSuccess))
}

func (r *PostgresRepo) ListFailedSyncs(ctx context.Context, limit int) ([]model.SyncRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+syncRecordColumns+` FROM sync_records
		WHERE status = $1
		ORDER BY started_at DESC LIMIT $2
	`, model.SyncFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SyncRecord
	for rows.Next() {
		rec, err := scanSyncRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) DeleteFailedSyncs(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM sync_records WHERE status = $1`, model.SyncFailed)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SyncCounts groups entities of a kind by the status of their most recent
// sync record, and reports the timestamp of the newest successful sync.
func (r *PostgresRepo) SyncCounts(ctx context.Context, kind model.EntityKind) (model.SyncCounts, error) {
	var counts model.SyncCounts

	rows, err := r.DB.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM (
			SELECT DISTINCT ON (entity_id) status
			FROM sync_records
			WHERE entity_kind = $1
			ORDER BY entity_id, started_at DESC
		) latest
		GROUP BY status
	`, kind)
	if err != nil {
		return counts, err
	}
	defer rows.Close()

	for rows.Next() {
		var status model.SyncStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return counts, err
		}
		switch status {
		case model.SyncSuccess:
			counts.Synced = n
		case model.SyncPending:
			counts.Pending = n
		case model.SyncFailed:
			counts.Failed = n
		}
	}
	if err := rows.Err(); err != nil {
		return counts, err
	}

	var last sql.NullTime
	err = r.DB.QueryRowContext(ctx, `
		SELECT MAX(completed_at) FROM sync_records
		WHERE entity_kind = $1 AND status = $2
	`, kind, model.SyncSuccess).Scan(&last)
	if err != nil {
		return counts, err
	}
	if last.Valid {
		counts.LastSync = &last.Time
	}
	return counts, nil
}

// ---- helpers ----

func (r *PostgresRepo) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func mapScanErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
