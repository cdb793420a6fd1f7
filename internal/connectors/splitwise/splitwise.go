// Package splitwise fetches shared expenses from the Splitwise API into
// raw records.
package splitwise

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

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

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://secure.splitwise.com/api/v3.0"

// Client calls the expenses API with bearer authentication.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient builds an API client. baseURL may be empty to use the
// production endpoint; tests point it at a local server.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// expensesResponse is the wire shape of get_expenses.
type expensesResponse struct {
	Expenses []models.SplitwiseRecord `json:"expenses"`
}

// GetExpenses fetches up to limit expenses. Unreachable endpoints and
// rejected credentials are source-level failures; individual expenses pass
// through verbatim, soft-deleted ones included.
func (c *Client) GetExpenses(ctx context.Context, limit, offset int) ([]models.SplitwiseRecord, error) {
	endpoint := c.baseURL + "/get_expenses"

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errs.NewSourceError(string(models.AccountSplitwise), err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewSourceError(string(models.AccountSplitwise), err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.NewSourceError(string(models.AccountSplitwise),
			fmt.Errorf("get_expenses returned status %d", resp.StatusCode))
	}

	var body expensesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.NewSourceError(string(models.AccountSplitwise),
			fmt.Errorf("decoding get_expenses response: %w", err))
	}

	log.WithField("count", len(body.Expenses)).Info("Fetched splitwise expenses")
	return body.Expenses, nil
}
