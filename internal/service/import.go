package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/convergenps/backend/internal/config"
	"github.com/convergenps/backend/internal/model"
	"github.com/convergenps/backend/internal/repository"
	"github.com/convergenps/backend/internal/smartsheet"
)

const defaultSessionCapacity = 50

// Column alias tables. Externally authored sheets rarely agree on headers, so
// each logical field lists every title we accept, tried in order. Keeping
// these declarative keeps the resolution testable apart from the import flow.
var (
	sessionAliases = map[string][]string{
		"title":       {"Title", "Session Title", "Event Title", "Session Name", "Name"},
		"date":        {"Date", "Session Date", "Event Date"},
		"startTime":   {"Start Time", "Start", "Begin Time"},
		"endTime":     {"End Time", "End"},
		"location":    {"Location", "Room", "Venue"},
		"track":       {"Track", "Category"},
		"capacity":    {"Capacity", "Max Attendees", "Seats"},
		"description": {"Description", "Details", "Session Description"},
	}

	projectAliases = map[string][]string{
		"title":       {"Title", "Project Title", "Project Name"},
		"department":  {"Department", "Dept", "School/Department"},
		"description": {"Description", "Abstract", "Project Description"},
		"partner":     {"Partner", "Partner Organization", "Company", "Sponsor"},
		"piName":      {"PI Name", "Principal Investigator", "Faculty Name", "Lead"},
		"piEmail":     {"PI Email", "Principal Investigator Email", "Faculty Email", "Email"},
	}

	opportunityAliases = map[string][]string{
		"title":       {"Title", "Opportunity Title", "Opportunity Name"},
		"sponsor":     {"Sponsor Organization", "Sponsor", "Organization", "Company"},
		"type":        {"Type", "Opportunity Type"},
		"description": {"Description", "Details"},
	}

	partnerAliases = map[string][]string{
		"name":         {"Name", "Organization Name", "Company Name", "Partner Name"},
		"orgType":      {"Organization Type", "Org Type", "Type", "Sector"},
		"contactName":  {"Contact Name", "POC", "Point of Contact", "Contact"},
		"contactEmail": {"Contact Email", "POC Email", "Email"},
		"website":      {"Website", "URL", "Web Site"},
	}

	attendeeAliases = map[string][]string{
		"fullName":     {"Full Name", "Name", "Attendee Name"},
		"email":        {"Email", "Email Address", "Attendee Email"},
		"organization": {"Organization", "Company", "Affiliation"},
		"title":        {"Title", "Job Title", "Position"},
	}
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ImportService pulls externally authored sheets into internal records.
// Fetch-level failures abort a run; per-row problems never do, they are
// absorbed into the ImportResult so the rest of the sheet still lands.
type ImportService struct {
	store  Store
	sheets SheetAPI
	queue  *smartsheet.RequestQueue
	cfg    *config.Config
	now    func() time.Time
}

func NewImportService(store Store, sheets SheetAPI, queue *smartsheet.RequestQueue, cfg *config.Config) *ImportService {
	return &ImportService{
		store:  store,
		sheets: sheets,
		queue:  queue,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (s *ImportService) fetchSheet(ctx context.Context, sheetID, setting string) (*smartsheet.Sheet, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, &smartsheet.ConfigurationError{Setting: setting}
	}
	v, err := s.queue.Enqueue(func() (interface{}, error) {
		return s.sheets.GetSheet(ctx, sheetID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*smartsheet.Sheet), nil
}

// ImportSessions imports the event schedule sheet.
func (s *ImportService) ImportSessions(ctx context.Context) (*model.ImportResult, error) {
	sheet, err := s.fetchSheet(ctx, s.cfg.SessionsSheetID, "sessions sheet id")
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{}
	for _, row := range sheet.Rows {
		title := sheet.CellValue(row, sessionAliases["title"]...)
		if title == "" {
			result.AddError(row.RowNumber, "Missing required field: Title", nil)
			continue
		}

		dateStr := sheet.CellValue(row, sessionAliases["date"]...)
		startStr := sheet.CellValue(row, sessionAliases["startTime"]...)
		start, err := parseDateTime(dateStr, startStr)
		if err != nil {
			result.AddError(row.RowNumber, err.Error(), map[string]string{"title": title})
			continue
		}

		var end time.Time
		if endStr := sheet.CellValue(row, sessionAliases["endTime"]...); endStr != "" {
			if end, err = parseDateTime(dateStr, endStr); err != nil {
				result.AddError(row.RowNumber, err.Error(), map[string]string{"title": title})
				continue
			}
		}

		sess := &model.Session{
			Title:       title,
			Description: sheet.CellValue(row, sessionAliases["description"]...),
			Location:    sheet.CellValue(row, sessionAliases["location"]...),
			Track:       sheet.CellValue(row, sessionAliases["track"]...),
			Capacity:    parseIntDefault(sheet.CellValue(row, sessionAliases["capacity"]...), defaultSessionCapacity),
			StartTime:   start,
			EndTime:     end,
		}

		existing, err := s.store.FindSessionByTitleAndStart(ctx, title, start)
		switch {
		case err == nil:
			sess.ID = existing.ID
			if err := s.store.UpdateSession(ctx, sess); err != nil {
				result.AddError(row.RowNumber, "Failed to update session: "+err.Error(), nil)
				continue
			}
			result.Updated++
		case errors.Is(err, repository.ErrNotFound):
			if err := s.store.CreateSession(ctx, sess); err != nil {
				result.AddError(row.RowNumber, "Failed to create session: "+err.Error(), nil)
				continue
			}
			result.Imported++
		default:
			result.AddError(row.RowNumber, "Session lookup failed: "+err.Error(), nil)
		}
	}
	return result, nil
}

// ImportProjects imports the faculty/student project intake sheet. Each
// project needs a resolvable principal investigator; unknown PI emails get a
// placeholder profile. Classification comes from the owning partner's
// organization type.
func (s *ImportService) ImportProjects(ctx context.Context) (*model.ImportResult, error) {
	sheet, err := s.fetchSheet(ctx, s.cfg.ProjectsSheetID, "projects sheet id")
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{}
	for _, row := range sheet.Rows {
		title := sheet.CellValue(row, projectAliases["title"]...)
		if title == "" {
			result.AddError(row.RowNumber, "Missing required field: Title", nil)
			continue
		}
		piEmail := sheet.CellValue(row, projectAliases["piEmail"]...)
		if piEmail == "" {
			result.AddError(row.RowNumber, "Missing required field: PI Email", map[string]string{"title": title})
			continue
		}
		if !emailRe.MatchString(piEmail) {
			result.AddError(row.RowNumber, "Invalid email: "+piEmail, map[string]string{"title": title})
			continue
		}

		partnerName := sheet.CellValue(row, projectAliases["partner"]...)
		orgType := ""
		var partnerID *string
		if partnerName != "" {
			partner, err := s.store.FindPartnerByName(ctx, partnerName)
			if err == nil {
				orgType = partner.OrganizationType
				partnerID = &partner.ID
			} else if !errors.Is(err, repository.ErrNotFound) {
				result.AddError(row.RowNumber, "Partner lookup failed: "+err.Error(), nil)
				continue
			}
		}

		pi, err := s.resolvePI(ctx, piEmail, sheet.CellValue(row, projectAliases["piName"]...))
		if err != nil {
			result.AddError(row.RowNumber, "Failed to resolve PI: "+err.Error(), map[string]string{"title": title})
			continue
		}

		department := sheet.CellValue(row, projectAliases["department"]...)
		proj := &model.Project{
			Title:          title,
			Classification: classifyProject(orgType),
			Department:     department,
			Description:    sheet.CellValue(row, projectAliases["description"]...),
			PIProfileID:    pi.ID,
			PartnerID:      partnerID,
		}

		// Classification is part of the natural key, preserved from observed
		// behavior: a partner whose org type changes between imports yields a
		// new project row instead of updating the old one.
		existing, err := s.store.FindProject(ctx, title, proj.Classification, department)
		switch {
		case err == nil:
			proj.ID = existing.ID
			if err := s.store.UpdateProject(ctx, proj); err != nil {
				result.AddError(row.RowNumber, "Failed to update project: "+err.Error(), nil)
				continue
			}
			result.Updated++
		case errors.Is(err, repository.ErrNotFound):
			if err := s.store.CreateProject(ctx, proj); err != nil {
				result.AddError(row.RowNumber, "Failed to create project: "+err.Error(), nil)
				continue
			}
			result.Imported++
		default:
			result.AddError(row.RowNumber, "Project lookup failed: "+err.Error(), nil)
		}
	}
	return result, nil
}

// ImportOpportunities imports the opportunities sheet.
func (s *ImportService) ImportOpportunities(ctx context.Context) (*model.ImportResult, error) {
	sheet, err := s.fetchSheet(ctx, s.cfg.OpportunitiesSheetID, "opportunities sheet id")
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{}
	for _, row := range sheet.Rows {
		title := sheet.CellValue(row, opportunityAliases["title"]...)
		if title == "" {
			result.AddError(row.RowNumber, "Missing required field: Title", nil)
			continue
		}
		sponsor := sheet.CellValue(row, opportunityAliases["sponsor"]...)
		if sponsor == "" {
			result.AddError(row.RowNumber, "Missing required field: Sponsor Organization", map[string]string{"title": title})
			continue
		}

		opp := &model.Opportunity{
			Title:               title,
			SponsorOrganization: sponsor,
			Type:                sheet.CellValue(row, opportunityAliases["type"]...),
			Description:         sheet.CellValue(row, opportunityAliases["description"]...),
		}

		existing, err := s.store.FindOpportunity(ctx, title, sponsor)
		switch {
		case err == nil:
			opp.ID = existing.ID
			if err := s.store.UpdateOpportunity(ctx, opp); err != nil {
				result.AddError(row.RowNumber, "Failed to update opportunity: "+err.Error(), nil)
				continue
			}
			result.Updated++
		case errors.Is(err, repository.ErrNotFound):
			if err := s.store.CreateOpportunity(ctx, opp); err != nil {
				result.AddError(row.RowNumber, "Failed to create opportunity: "+err.Error(), nil)
				continue
			}
			result.Imported++
		default:
			result.AddError(row.RowNumber, "Opportunity lookup failed: "+err.Error(), nil)
		}
	}
	return result, nil
}

// ImportPartners imports the industry intake sheet.
func (s *ImportService) ImportPartners(ctx context.Context) (*model.ImportResult, error) {
	sheet, err := s.fetchSheet(ctx, s.cfg.PartnersSheetID, "partners sheet id")
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{}
	for _, row := range sheet.Rows {
		name := sheet.CellValue(row, partnerAliases["name"]...)
		if name == "" {
			result.AddError(row.RowNumber, "Missing required field: Name", nil)
			continue
		}
		contactEmail := sheet.CellValue(row, partnerAliases["contactEmail"]...)
		if contactEmail != "" && !emailRe.MatchString(contactEmail) {
			result.AddError(row.RowNumber, "Invalid email: "+contactEmail, map[string]string{"name": name})
			continue
		}

		partner := &model.Partner{
			Name:             name,
			OrganizationType: sheet.CellValue(row, partnerAliases["orgType"]...),
			ContactName:      sheet.CellValue(row, partnerAliases["contactName"]...),
			ContactEmail:     contactEmail,
			Website:          sheet.CellValue(row, partnerAliases["website"]...),
		}

		existing, err := s.store.FindPartnerByName(ctx, name)
		switch {
		case err == nil:
			partner.ID = existing.ID
			if err := s.store.UpdatePartner(ctx, partner); err != nil {
				result.AddError(row.RowNumber, "Failed to update partner: "+err.Error(), nil)
				continue
			}
			result.Updated++
		case errors.Is(err, repository.ErrNotFound):
			if err := s.store.CreatePartner(ctx, partner); err != nil {
				result.AddError(row.RowNumber, "Failed to create partner: "+err.Error(), nil)
				continue
			}
			result.Imported++
		default:
			result.AddError(row.RowNumber, "Partner lookup failed: "+err.Error(), nil)
		}
	}
	return result, nil
}

// ImportAttendees imports the registration sheet. Every newly created profile
// gets a scan code so the attendee can be checked in.
func (s *ImportService) ImportAttendees(ctx context.Context) (*model.ImportResult, error) {
	sheet, err := s.fetchSheet(ctx, s.cfg.AttendeesSheetID, "attendees sheet id")
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{}
	for _, row := range sheet.Rows {
		email := sheet.CellValue(row, attendeeAliases["email"]...)
		if email == "" {
			result.AddError(row.RowNumber, "Missing required field: Email", nil)
			continue
		}
		if !emailRe.MatchString(email) {
			result.AddError(row.RowNumber, "Invalid email: "+email, nil)
			continue
		}

		fullName := sheet.CellValue(row, attendeeAliases["fullName"]...)
		if fullName == "" {
			fullName = email[:strings.Index(email, "@")]
		}

		profile := &model.Profile{
			FullName:     fullName,
			Email:        email,
			Organization: sheet.CellValue(row, attendeeAliases["organization"]...),
			Title:        sheet.CellValue(row, attendeeAliases["title"]...),
		}

		existing, err := s.store.FindProfileByEmail(ctx, email)
		switch {
		case err == nil:
			profile.ID = existing.ID
			profile.Placeholder = existing.Placeholder
			if err := s.store.UpdateProfile(ctx, profile); err != nil {
				result.AddError(row.RowNumber, "Failed to update profile: "+err.Error(), nil)
				continue
			}
			result.Updated++
		case errors.Is(err, repository.ErrNotFound):
			if err := s.store.CreateProfile(ctx, profile); err != nil {
				result.AddError(row.RowNumber, "Failed to create profile: "+err.Error(), nil)
				continue
			}
			sc := &model.ScanCode{ProfileID: profile.ID, Code: uuid.NewString()}
			if err := s.store.CreateScanCode(ctx, sc); err != nil {
				result.AddError(row.RowNumber, "Failed to create scan code: "+err.Error(), map[string]string{"email": email})
				continue
			}
			result.Imported++
		default:
			result.AddError(row.RowNumber, "Profile lookup failed: "+err.Error(), nil)
		}
	}
	return result, nil
}

// ImportAll runs every import. A kind whose fetch fails is reported in Errors
// and the remaining kinds still run.
func (s *ImportService) ImportAll(ctx context.Context) *model.AllImportResult {
	out := &model.AllImportResult{
		Results: make(map[string]*model.ImportResult),
		Errors:  make(map[string]string),
	}

	imports := []struct {
		kind string
		run  func(context.Context) (*model.ImportResult, error)
	}{
		{"partners", s.ImportPartners},
		{"sessions", s.ImportSessions},
		{"projects", s.ImportProjects},
		{"opportunities", s.ImportOpportunities},
		{"attendees", s.ImportAttendees},
	}

	for _, imp := range imports {
		result, err := imp.run(ctx)
		if err != nil {
			log.Printf("import %s failed: %v", imp.kind, err)
			out.Errors[imp.kind] = err.Error()
			continue
		}
		out.Results[imp.kind] = result
	}
	if len(out.Errors) == 0 {
		out.Errors = nil
	}
	return out
}

// InspectSheet reports a sheet's column layout, for debugging imports whose
// headers don't match any alias.
func (s *ImportService) InspectSheet(ctx context.Context, kind string) (*model.SheetInfo, error) {
	sheetID := s.cfg.SheetID(kind)
	sheet, err := s.fetchSheet(ctx, sheetID, kind+" sheet id")
	if err != nil {
		return nil, err
	}

	info := &model.SheetInfo{
		Name:      sheet.Name,
		TotalRows: sheet.TotalRowCount,
		Columns:   make([]model.ColumnInfo, 0, len(sheet.Columns)),
	}
	for _, col := range sheet.Columns {
		info.Columns = append(info.Columns, model.ColumnInfo{ID: col.ID, Title: col.Title, Type: col.Type})
	}
	return info, nil
}

// resolvePI finds the principal investigator's profile by email, creating a
// placeholder when none exists yet.
func (s *ImportService) resolvePI(ctx context.Context, email, name string) (*model.Profile, error) {
	profile, err := s.store.FindProfileByEmail(ctx, email)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if name == "" {
		name = email[:strings.Index(email, "@")]
	}
	profile = &model.Profile{
		FullName:    name,
		Email:       email,
		Placeholder: true,
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// classifyProject applies the binary classification rule: only a partner
// whose organization type is "industry" (any casing) classifies as Industry;
// everything else, including no partner at all, is Military/Gov.
func classifyProject(orgType string) string {
	if strings.EqualFold(strings.TrimSpace(orgType), "industry") {
		return "Industry"
	}
	return "Military/Gov"
}

// parseDateTime accepts either a separate date + clock pair or a single
// combined value in the date column.
func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" {
		return time.Time{}, errors.New("Missing required field: Date")
	}

	if timeStr != "" {
		d, err := parseDate(dateStr)
		if err != nil {
			return time.Time{}, err
		}
		clock, err := parseClock(timeStr)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
	}

	combined := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"01/02/2006 15:04",
		"01/02/2006 3:04 PM",
	}
	for _, layout := range combined {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.UTC(), nil
		}
	}
	if d, err := parseDate(dateStr); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("Invalid date: %s", dateStr)
}

func parseDate(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"1/2/2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Invalid date: %s", s)
}

func parseClock(s string) (time.Time, error) {
	layouts := []string{
		"15:04",
		"15:04:05",
		"3:04 PM",
		"3:04PM",
		"3 PM",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("Invalid time: %s", s)
}

// parseIntDefault coerces numeric text, falling back when unparsable.
func parseIntDefault(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return fallback
}
