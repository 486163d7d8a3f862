package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/vadim/order-metrics/internal/domain/orders/entity"
)

const (
	valueInputRaw    = "RAW"
	dimensionColumns = "COLUMNS"
)

// ErrNoCredentials is returned when neither inline nor file credentials are configured
var ErrNoCredentials = errors.New("google credentials not configured")

// ErrDuplicateHeader is returned by Records when two header cells share a name
var ErrDuplicateHeader = errors.New("header row is not unique")

// Client is a Google Sheets API client
type Client struct {
	svc *gsheets.Service
}

// New creates a new Sheets client
func New(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Credentials builds the auth option for a service account, inline JSON taking precedence over a key file
func Credentials(credentialsJSON, credentialsFile string) ([]option.ClientOption, error) {
	scopes := option.WithScopes(gsheets.SpreadsheetsScope)

	switch {
	case credentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(credentialsJSON)), scopes}, nil
	case credentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(credentialsFile), scopes}, nil
	default:
		return nil, ErrNoCredentials
	}
}

// Worksheet returns a handle to a single sheet of a spreadsheet
func (c *Client) Worksheet(spreadsheetID, title string) *Worksheet {
	return &Worksheet{
		svc:           c.svc,
		spreadsheetID: spreadsheetID,
		title:         title,
	}
}

// Worksheet reads and writes a single named sheet
type Worksheet struct {
	svc           *gsheets.Service
	spreadsheetID string
	title         string
}

// ColumnValues returns all values of a column, top to bottom
func (w *Worksheet) ColumnValues(ctx context.Context, column string) ([]string, error) {
	rng := w.a1(column + ":" + column)

	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, rng).
		MajorDimension(dimensionColumns).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rng, err)
	}

	if len(resp.Values) == 0 {
		return []string{}, nil
	}
	return toStrings(resp.Values[0]), nil
}

// ReadCell returns the formatted value of a single cell, empty if the cell is blank
func (w *Worksheet) ReadCell(ctx context.Context, cell string) (string, error) {
	rng := w.a1(cell)

	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rng, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

// WriteCell overwrites a single cell with a raw value
func (w *Worksheet) WriteCell(ctx context.Context, cell string, value interface{}) error {
	rng := w.a1(cell)

	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, rng, &gsheets.ValueRange{
		Range:  rng,
		Values: [][]interface{}{{value}},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing %s: %w", rng, err)
	}
	return nil
}

// Records returns every row below the header as a map keyed by header name.
// Short rows are padded with empty values.
func (w *Worksheet) Records(ctx context.Context) ([]entity.Row, error) {
	rng := quoteTitle(w.title)

	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rng, err)
	}

	if len(resp.Values) == 0 {
		return []entity.Row{}, nil
	}

	header := toStrings(resp.Values[0])
	seen := make(map[string]struct{}, len(header))
	for _, key := range header {
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("reading %s: %w: %q", rng, ErrDuplicateHeader, key)
		}
		seen[key] = struct{}{}
	}

	rows := make([]entity.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		values := toStrings(raw)
		row := make(entity.Row, len(header))
		for i, key := range header {
			if i < len(values) {
				row[key] = values[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (w *Worksheet) a1(ref string) string {
	return quoteTitle(w.title) + "!" + ref
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func toStrings(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
