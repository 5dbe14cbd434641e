package smartsheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convergenps/backend/internal/model"
)

func cellMap(row Row) map[string]interface{} {
	out := make(map[string]interface{}, len(row.Cells))
	for _, c := range row.Cells {
		out[c.ColumnID] = c.Value
	}
	return out
}

func TestUserRow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	row := UserRow(&model.Profile{
		ID:       "u1",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	}, now)

	cells := cellMap(row)
	assert.Equal(t, "u1", cells["userId"])
	assert.Equal(t, "Ada Lovelace", cells["fullName"])
	assert.Equal(t, "synced", cells["syncStatus"])
	assert.Equal(t, "2025-06-01T12:00:00Z", cells["lastSynced"])
}

func TestRSVPAndConnectionRowsCarrySyncCells(t *testing.T) {
	now := time.Now()

	r := RSVPRow(&model.RSVP{ID: "r1", ProfileID: "u1", SessionID: "s1", Status: "going"}, now)
	cells := cellMap(r)
	assert.Equal(t, "r1", cells["rsvpId"])
	assert.Equal(t, "synced", cells["syncStatus"])
	assert.NotEmpty(t, cells["lastSynced"])

	c := ConnectionRow(&model.Connection{ID: "c1", RequesterID: "u1", RecipientID: "u2", Status: "accepted"}, now)
	cells = cellMap(c)
	assert.Equal(t, "c1", cells["connectionId"])
	assert.Equal(t, "synced", cells["syncStatus"])
}

func TestParseEntityKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want model.EntityKind
	}{
		{"user", model.KindUser},
		{"users", model.KindUser},
		{"RSVP", model.KindRSVP},
		{"rsvps", model.KindRSVP},
		{" connection ", model.KindConnection},
		{"connections", model.KindConnection},
	} {
		kind, err := ParseEntityKind(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, kind)
	}

	_, err := ParseEntityKind("partner")
	assert.Error(t, err)
}

func TestCellValueAliasResolution(t *testing.T) {
	sheet := &Sheet{
		Columns: []Column{
			{ID: 1, Title: "Event Title"},
			{ID: 2, Title: "Date"},
		},
		Rows: []SheetRow{
			{ID: 10, RowNumber: 1, Cells: []SheetCell{
				{ColumnID: 1, Value: "Kickoff"},
				{ColumnID: 2, Value: "2025-06-01"},
			}},
		},
	}

	// first non-empty alias match wins; "Title" is absent, "Event Title" hits
	got := sheet.CellValue(sheet.Rows[0], "Title", "Session Title", "Event Title")
	assert.Equal(t, "Kickoff", got)

	// case-insensitive title match
	got = sheet.CellValue(sheet.Rows[0], "event title")
	assert.Equal(t, "Kickoff", got)

	// unknown columns resolve to empty
	assert.Equal(t, "", sheet.CellValue(sheet.Rows[0], "Location"))
}

func TestCellValueSkipsEmptyCells(t *testing.T) {
	sheet := &Sheet{
		Columns: []Column{
			{ID: 1, Title: "Title"},
			{ID: 2, Title: "Session Title"},
		},
		Rows: []SheetRow{
			{RowNumber: 1, Cells: []SheetCell{
				{ColumnID: 1, Value: ""},
				{ColumnID: 2, Value: "Fallback"},
			}},
		},
	}

	got := sheet.CellValue(sheet.Rows[0], "Title", "Session Title")
	assert.Equal(t, "Fallback", got)
}

func TestCellValueCoercion(t *testing.T) {
	sheet := &Sheet{
		Columns: []Column{
			{ID: 1, Title: "Capacity"},
			{ID: 2, Title: "Active"},
		},
		Rows: []SheetRow{
			{RowNumber: 1, Cells: []SheetCell{
				{ColumnID: 1, Value: float64(75)},
				{ColumnID: 2, Value: true},
			}},
		},
	}

	assert.Equal(t, "75", sheet.CellValue(sheet.Rows[0], "Capacity"))
	assert.Equal(t, "true", sheet.CellValue(sheet.Rows[0], "Active"))
}

func TestCellValuePrefersDisplayValue(t *testing.T) {
	sheet := &Sheet{
		Columns: []Column{{ID: 1, Title: "Date"}},
		Rows: []SheetRow{
			{RowNumber: 1, Cells: []SheetCell{
				{ColumnID: 1, Value: float64(45809), DisplayValue: "2025-06-01"},
			}},
		},
	}

	assert.Equal(t, "2025-06-01", sheet.CellValue(sheet.Rows[0], "Date"))
}
