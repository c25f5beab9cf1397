package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type LoanHandler struct {
	loans ports.LoanService
}

func NewLoanHandler(loans ports.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type createLoanRequest struct {
	Title         string  `json:"title"         validate:"required,max=100"`
	Description   string  `json:"description"   validate:"required,max=1000"`
	InterestRate  float64 `json:"interestRate"  validate:"gte=0,lte=100"`
	ProcessingFee float64 `json:"processingFee" validate:"gte=0"`
	MaxAmount     float64 `json:"maxAmount"     validate:"gte=0"`
	MinAmount     float64 `json:"minAmount"     validate:"gte=0"`
	TenureOptions []int   `json:"tenureOptions" validate:"required,min=1,dive,gt=0"`
	IsActive      *bool   `json:"isActive"`
}

type updateLoanRequest struct {
	Title         *string  `json:"title"         validate:"omitempty,max=100"`
	Description   *string  `json:"description"   validate:"omitempty,max=1000"`
	InterestRate  *float64 `json:"interestRate"  validate:"omitempty,gte=0,lte=100"`
	ProcessingFee *float64 `json:"processingFee" validate:"omitempty,gte=0"`
	MaxAmount     *float64 `json:"maxAmount"     validate:"omitempty,gte=0"`
	MinAmount     *float64 `json:"minAmount"     validate:"omitempty,gte=0"`
	TenureOptions []int    `json:"tenureOptions" validate:"omitempty,min=1,dive,gt=0"`
	IsActive      *bool    `json:"isActive"`
}

// List returns the active catalog.
//
// @Summary      List active loans
// @Tags         loans
// @Produce      json
// @Param        search  query     string  false  "Match on title or description"
// @Param        type    query     string  false  "Match on title"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Loan]
// @Router       /loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	res, err := h.loans.List(c.Request().Context(), ports.LoanFilter{
		ActiveOnly: true,
		Search:     c.QueryParam("search"),
		Type:       c.QueryParam("type"),
		Page:       page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paged(res))
}

// Get returns one active loan.
//
// @Summary      Get a loan
// @Tags         loans
// @Produce      json
// @Param        id   path      string  true  "Loan id"
// @Success      200  {object}  dataResponse[domain.Loan]
// @Failure      404  {object}  ErrorResponse
// @Router       /loans/{id} [get]
func (h *LoanHandler) Get(c echo.Context) error {
	loan, err := h.loans.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, withData(loan, ""))
}

// Create adds a loan to the catalog.
//
// @Summary      Create a loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLoanRequest  true  "Loan"
// @Success      201   {object}  dataResponse[domain.Loan]
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /loans [post]
func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	loan, err := h.loans.Create(c.Request().Context(), domain.Loan{
		Title:         req.Title,
		Description:   req.Description,
		InterestRate:  req.InterestRate,
		ProcessingFee: req.ProcessingFee,
		MaxAmount:     req.MaxAmount,
		MinAmount:     req.MinAmount,
		TenureOptions: req.TenureOptions,
		IsActive:      active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, withData(loan, "Loan created successfully"))
}

// Update applies a partial change to a loan.
//
// @Summary      Update a loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Loan id"
// @Param        body  body      updateLoanRequest  true  "Fields to change"
// @Success      200   {object}  dataResponse[domain.Loan]
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /loans/{id} [put]
func (h *LoanHandler) Update(c echo.Context) error {
	var req updateLoanRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	loan, err := h.loans.Update(c.Request().Context(), c.Param("id"), domain.LoanPatch{
		Title:         req.Title,
		Description:   req.Description,
		InterestRate:  req.InterestRate,
		ProcessingFee: req.ProcessingFee,
		MaxAmount:     req.MaxAmount,
		MinAmount:     req.MinAmount,
		TenureOptions: req.TenureOptions,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, withData(loan, "Loan updated successfully"))
}

// Delete removes a loan.
//
// @Summary      Delete a loan
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Loan id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /loans/{id} [delete]
func (h *LoanHandler) Delete(c echo.Context) error {
	if err := h.loans.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageOK("Loan deleted successfully"))
}

// Toggle flips a loan between active and inactive.
//
// @Summary      Toggle loan visibility
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Loan id"
// @Success      200  {object}  dataResponse[domain.Loan]
// @Failure      404  {object}  ErrorResponse
// @Router       /loans/toggle/{id} [put]
func (h *LoanHandler) Toggle(c echo.Context) error {
	loan, err := h.loans.ToggleActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	msg := "Loan deactivated successfully"
	if loan.IsActive {
		msg = "Loan activated successfully"
	}
	return c.JSON(http.StatusOK, withData(loan, msg))
}
