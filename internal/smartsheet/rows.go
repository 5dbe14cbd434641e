package smartsheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/convergenps/backend/internal/model"
)

// Export mappers. One pure function per entity kind, no I/O: each produces
// the outbound cell set for the kind's target sheet using the sheet's logical
// column names, and stamps syncStatus/lastSynced on every row.

func UserRow(p *model.Profile, now time.Time) Row {
	return Row{Cells: append([]Cell{
		{ColumnID: "userId", Value: p.ID},
		{ColumnID: "fullName", Value: p.FullName},
		{ColumnID: "email", Value: p.Email},
		{ColumnID: "organization", Value: p.Organization},
		{ColumnID: "title", Value: p.Title},
	}, syncCells(now)...)}
}

func RSVPRow(r *model.RSVP, now time.Time) Row {
	return Row{Cells: append([]Cell{
		{ColumnID: "rsvpId", Value: r.ID},
		{ColumnID: "userId", Value: r.ProfileID},
		{ColumnID: "sessionId", Value: r.SessionID},
		{ColumnID: "status", Value: r.Status},
	}, syncCells(now)...)}
}

func ConnectionRow(cn *model.Connection, now time.Time) Row {
	return Row{Cells: append([]Cell{
		{ColumnID: "connectionId", Value: cn.ID},
		{ColumnID: "requesterId", Value: cn.RequesterID},
		{ColumnID: "recipientId", Value: cn.RecipientID},
		{ColumnID: "status", Value: cn.Status},
	}, syncCells(now)...)}
}

func syncCells(now time.Time) []Cell {
	return []Cell{
		{ColumnID: "syncStatus", Value: "synced"},
		{ColumnID: "lastSynced", Value: now.UTC().Format(time.RFC3339)},
	}
}

// ParseEntityKind validates a kind string coming off the HTTP layer.
func ParseEntityKind(s string) (model.EntityKind, error) {
	switch model.EntityKind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")) {
	case model.KindUser:
		return model.KindUser, nil
	case model.KindRSVP:
		return model.KindRSVP, nil
	case model.KindConnection:
		return model.KindConnection, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// CellValue resolves a field from a row by trying the given column titles in
// order; the first non-empty match wins. Titles are matched
// case-insensitively because externally authored sheets use inconsistent
// headers ("Title" vs "Event Title" vs "title ").
func (s *Sheet) CellValue(row SheetRow, titles ...string) string {
	if s.byTitle == nil {
		s.byTitle = make(map[string]int64, len(s.Columns))
		for _, col := range s.Columns {
			s.byTitle[normalizeTitle(col.Title)] = col.ID
		}
	}
	for _, title := range titles {
		colID, ok := s.byTitle[normalizeTitle(title)]
		if !ok {
			continue
		}
		for _, cell := range row.Cells {
			if cell.ColumnID != colID {
				continue
			}
			if v := cellString(cell); v != "" {
				return v
			}
		}
	}
	return ""
}

func normalizeTitle(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// cellString prefers the display value, then coerces the raw value. Smartsheet
// returns numbers as float64 and sometimes numeric text.
func cellString(cell SheetCell) string {
	if v := strings.TrimSpace(cell.DisplayValue); v != "" {
		return v
	}
	switch v := cell.Value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
