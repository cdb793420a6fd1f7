package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mcoudert/budget-engine/internal/errs"
	"mcoudert/budget-engine/internal/models"
	"mcoudert/budget-engine/internal/service"
)

func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// parseCategory applies the boundary rule for category input, shared with
// the CLI: case-insensitive, and an explicit UNKNOWN is rejected the same
// way an unrecognized value is.
func parseCategory(raw string) (models.Category, error) {
	category := models.ParseCategory(raw)
	if category == models.CategoryUnknown {
		return "", errs.NewInvalidArgument("category %q is not in the enumeration", raw)
	}
	return category, nil
}

// transactionRow is the wire shape of one transaction. Amounts go out as
// JSON numbers, not decimal strings.
type transactionRow struct {
	TransactionID string  `json:"transaction_id"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Account       string  `json:"account"`
	Category      string  `json:"category"`
}

func (s *Server) handleTransactions(c echo.Context) error {
	month := c.QueryParam("month")
	uncategorized := c.QueryParam("uncategorized") == "true"

	rows, err := s.svc.Transactions(c.Request().Context(), month, uncategorized)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]transactionRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, transactionRow{
			TransactionID: row.TransactionID,
			Date:          row.Date,
			Description:   row.Description,
			Amount:        row.Amount.InexactFloat64(),
			Account:       string(row.Account),
			Category:      string(row.Category),
		})
	}
	return c.JSON(http.StatusOK, out)
}

type categorizeRequest struct {
	TransactionID string `json:"transaction_id"`
	Category      string `json:"category"`
}

func (s *Server) handleCategorize(c echo.Context) error {
	var req categorizeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewInvalidArgument("malformed request body"))
	}
	if req.TransactionID == "" {
		return writeError(c, errs.NewInvalidArgument("transaction_id is required"))
	}

	category, err := parseCategory(req.Category)
	if err != nil {
		return writeError(c, err)
	}

	if err := s.svc.SetUserCategory(c.Request().Context(), req.TransactionID, category); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"transaction_id": req.TransactionID,
		"category":       string(category),
	})
}

type categorizeMultipleRequest struct {
	TransactionIDs []string `json:"transaction_ids"`
	Category       string   `json:"category"`
}

func (s *Server) handleCategorizeMultiple(c echo.Context) error {
	var req categorizeMultipleRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errs.NewInvalidArgument("malformed request body"))
	}
	if len(req.TransactionIDs) == 0 {
		return writeError(c, errs.NewInvalidArgument("transaction_ids is required"))
	}

	category, err := parseCategory(req.Category)
	if err != nil {
		return writeError(c, err)
	}

	affected, err := s.svc.SetUserCategories(c.Request().Context(), req.TransactionIDs, category)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"affected": affected,
		"category": string(category),
	})
}

func (s *Server) handleAutoCategorize(c echo.Context) error {
	result, err := s.svc.AutoCategorize(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

type pivotCell struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

func (s *Server) handlePivotData(c echo.Context) error {
	cells, err := s.svc.PivotData(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	out := make([]pivotCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, pivotCell{
			Month:    cell.Month,
			Category: string(cell.Category),
			Amount:   cell.Amount.InexactFloat64(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleTotal(c echo.Context) error {
	var category models.Category
	if raw := c.QueryParam("category"); raw != "" {
		parsed, err := parseCategory(raw)
		if err != nil {
			return writeError(c, err)
		}
		category = parsed
	}

	total, err := s.svc.Total(c.Request().Context(), category)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]float64{"total": total.InexactFloat64()})
}

type monthlySpendRow struct {
	Year   int     `json:"year"`
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

func (s *Server) handleCategorySpend(c echo.Context) error {
	raw := c.QueryParam("category")
	if raw == "" {
		return writeError(c, errs.NewInvalidArgument("category is required"))
	}
	category, err := parseCategory(raw)
	if err != nil {
		return writeError(c, err)
	}

	series, err := s.svc.CategorySpend(c.Request().Context(), category)
	if err != nil {
		return writeError(c, err)
	}

	out := make([]monthlySpendRow, 0, len(series))
	for _, point := range series {
		out = append(out, monthlySpendRow{
			Year:   point.Year,
			Month:  point.Month,
			Amount: point.Amount.InexactFloat64(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleFullLoad(c echo.Context) error {
	if s.connector == nil {
		return writeError(c, errs.NewInvalidArgument("no sources configured"))
	}
	results := s.connector(c.Request().Context())
	return c.JSON(http.StatusOK, map[string][]service.SourceResult{"sources": results})
}
