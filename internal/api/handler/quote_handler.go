package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softsolution/lending-api/internal/api/metrics"
	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type QuoteHandler struct {
	quotes ports.QuoteService
}

func NewQuoteHandler(quotes ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

type submitQuoteRequest struct {
	Name       string  `json:"name"       validate:"required,max=50"`
	Phone      string  `json:"phone"      validate:"required,phone"`
	LoanAmount float64 `json:"loanAmount" validate:"gte=0"`
	LoanType   string  `json:"loanType"   validate:"required"`
}

// Submit records an anonymous quote request.
//
// @Summary      Request a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body      submitQuoteRequest  true  "Quote request"
// @Success      201   {object}  dataResponse[domain.Quote]
// @Failure      400   {object}  ErrorResponse
// @Router       /quotes [post]
func (h *QuoteHandler) Submit(c echo.Context) error {
	var req submitQuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	q, err := h.quotes.Submit(c.Request().Context(), domain.Quote{
		Name:       req.Name,
		Phone:      req.Phone,
		LoanAmount: req.LoanAmount,
		LoanType:   req.LoanType,
	})
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues("quote").Inc()
	return c.JSON(http.StatusCreated, withData(q, "Quote request submitted successfully"))
}

// List returns quote requests for follow-up.
//
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Match on name, phone or loanType"
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Quote]
// @Router       /quotes [get]
func (h *QuoteHandler) List(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	res, err := h.quotes.List(c.Request().Context(), ports.QuoteFilter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Page:   page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paged(res))
}

// UpdateStatus records follow-up progress on a quote.
//
// @Summary      Update quote status
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Quote id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  dataResponse[domain.Quote]
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /quotes/{id} [put]
func (h *QuoteHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	q, err := h.quotes.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, withData(q, "Quote status updated successfully"))
}
