// Package amex reads Amex card statement CSV exports into raw records.
package amex

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

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

// csvRow maps the columns of the statement export. Values stay verbatim;
// parsing happens at normalization time.
type csvRow struct {
	Date                 string `csv:"Date"`
	Description          string `csv:"Description"`
	Amount               string `csv:"Amount"`
	ExtendedDetails      string `csv:"Extended Details"`
	AppearsOnStatementAs string `csv:"Appears On Your Statement As"`
	Address              string `csv:"Address"`
	TownCity             string `csv:"Town/City"`
	Postcode             string `csv:"Postcode"`
	Country              string `csv:"Country"`
	Reference            string `csv:"Reference"`
	Category             string `csv:"Category"`
}

// ReadFile parses a statement CSV export into raw records. An unreadable
// file is a source-level failure; individual rows are passed through as-is.
func ReadFile(path string) ([]models.AmexRecord, error) {
	log.WithField("file", path).Info("Reading amex statement export")

	file, err := os.Open(path)
	if err != nil {
		return nil, errs.NewSourceError(string(models.AccountAmex), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close statement file")
		}
	}()

	var rows []csvRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, errs.NewSourceError(string(models.AccountAmex),
			fmt.Errorf("parsing statement CSV %s: %w", path, err))
	}

	recs := make([]models.AmexRecord, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, models.AmexRecord(row))
	}

	log.WithField("count", len(recs)).Info("Read amex statement rows")
	return recs, nil
}
