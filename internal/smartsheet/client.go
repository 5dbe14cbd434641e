package smartsheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.smartsheet.com/2.0"

// Column, SheetCell, SheetRow and Sheet mirror the Smartsheet REST objects the
// import path reads. Column ids are opaque and differ sheet to sheet; titles
// are the only stable cross-reference.
type Column struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type SheetCell struct {
	ColumnID     int64       `json:"columnId"`
	Value        interface{} `json:"value,omitempty"`
	DisplayValue string      `json:"displayValue,omitempty"`
}

type SheetRow struct {
	ID        int64       `json:"id"`
	RowNumber int         `json:"rowNumber"`
	Cells     []SheetCell `json:"cells"`
}

type Sheet struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	TotalRowCount int        `json:"totalRowCount"`
	Columns       []Column   `json:"columns"`
	Rows          []SheetRow `json:"rows"`

	byTitle map[string]int64
}

// Cell and Row are the outbound shapes the export mappers produce. Column
// identifiers are the logical names of the target sheet's schema.
type Cell struct {
	ColumnID string      `json:"columnId"`
	Value    interface{} `json:"value"`
}

type Row struct {
	ID    int64  `json:"id,omitempty"`
	Cells []Cell `json:"cells"`
}

// Client is a thin authenticated wrapper around the Smartsheet REST API.
// It performs no throttling of its own; the engines route every call through
// a RequestQueue.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

// doRequest performs an authenticated call and returns the body bytes.
func (c *Client) doRequest(ctx context.Context, method, url string, payload interface{}) ([]byte, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, &ConfigurationError{Setting: "SMARTSHEET_API_KEY"}
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + url, Err: err}
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, &TransportError{
			Op:  method + " " + url,
			Err: fmt.Errorf("api error %d: %s", resp.StatusCode, string(b)),
		}
	}
	return b, nil
}

// GetSheet fetches the whole sheet: columns, rows, cells.
func (c *Client) GetSheet(ctx context.Context, sheetID string) (*Sheet, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, &ConfigurationError{Setting: "sheet id"}
	}
	b, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/sheets/%s", c.BaseURL, sheetID), nil)
	if err != nil {
		return nil, err
	}
	var sheet Sheet
	if err := json.Unmarshal(b, &sheet); err != nil {
		return nil, &TransportError{Op: "decode sheet " + sheetID, Err: err}
	}
	return &sheet, nil
}

// AddRows appends rows to the sheet and returns the created row ids in order.
func (c *Client) AddRows(ctx context.Context, sheetID string, rows []Row) ([]int64, error) {
	if strings.TrimSpace(sheetID) == "" {
		return nil, &ConfigurationError{Setting: "sheet id"}
	}
	b, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("%s/sheets/%s/rows", c.BaseURL, sheetID), rows)
	if err != nil {
		return nil, err
	}
	var out struct {
		Result []struct {
			ID int64 `json:"id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, &TransportError{Op: "decode add rows response", Err: err}
	}
	ids := make([]int64, 0, len(out.Result))
	for _, r := range out.Result {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// UpdateRow replaces the cells of an existing row.
func (c *Client) UpdateRow(ctx context.Context, sheetID string, rowID int64, row Row) error {
	if strings.TrimSpace(sheetID) == "" {
		return &ConfigurationError{Setting: "sheet id"}
	}
	row.ID = rowID
	_, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("%s/sheets/%s/rows", c.BaseURL, sheetID), []Row{row})
	return err
}
