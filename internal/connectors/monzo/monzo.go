// Package monzo reads the Monzo banking spreadsheet export through the
// Google Sheets API into raw records.
package monzo

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Column headers of the export worksheet.
const (
	colTransactionID = "Transaction ID"
	colDate          = "Date"
	colTime          = "Time"
	colType          = "Type"
	colName          = "Name"
	colEmoji         = "Emoji"
	colCategory      = "Category"
	colAmount        = "Amount"
	colCurrency      = "Currency"
	colLocalAmount   = "Local amount"
	colLocalCurrency = "Local currency"
	colNotesAndTags  = "Notes and #tags"
	colAddress       = "Address"
	colReceipt       = "Receipt"
	colDescription   = "Description"
	colCategorySplit = "Category split"
)

// Client fetches rows from the configured spreadsheet.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewClient builds a read-only Sheets client from a service-account
// credentials file.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID, readRange string) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, errs.NewSourceError(string(models.AccountMonzo),
			fmt.Errorf("building sheets client: %w", err))
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}, nil
}

// Fetch reads the worksheet and maps its rows onto raw records by header
// name. Values stay verbatim; parsing happens at normalization time.
func (c *Client) Fetch(ctx context.Context) ([]models.MonzoRecord, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).Context(ctx).Do()
	if err != nil {
		return nil, errs.NewSourceError(string(models.AccountMonzo), err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make(map[string]int, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[fmt.Sprint(cell)] = i
	}
	if _, ok := header[colTransactionID]; !ok {
		return nil, errs.NewSourceError(string(models.AccountMonzo),
			fmt.Errorf("worksheet has no %q column", colTransactionID))
	}

	cell := func(row []interface{}, col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return fmt.Sprint(row[idx])
	}

	recs := make([]models.MonzoRecord, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := models.MonzoRecord{
			TransactionID: cell(row, colTransactionID),
			Date:          cell(row, colDate),
			Time:          cell(row, colTime),
			Type:          cell(row, colType),
			Name:          cell(row, colName),
			Emoji:         cell(row, colEmoji),
			Category:      cell(row, colCategory),
			Amount:        cell(row, colAmount),
			Currency:      cell(row, colCurrency),
			LocalAmount:   cell(row, colLocalAmount),
			LocalCurrency: cell(row, colLocalCurrency),
			NotesAndTags:  cell(row, colNotesAndTags),
			Address:       cell(row, colAddress),
			Receipt:       cell(row, colReceipt),
			Description:   cell(row, colDescription),
			CategorySplit: cell(row, colCategorySplit),
		}
		if rec.TransactionID == "" {
			continue
		}
		recs = append(recs, rec)
	}

	log.WithField("count", len(recs)).Info("Fetched monzo spreadsheet rows")
	return recs, nil
}
