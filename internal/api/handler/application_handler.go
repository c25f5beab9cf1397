package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softsolution/lending-api/internal/api/metrics"
	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type ApplicationHandler struct {
	apps ports.ApplicationService
}

func NewApplicationHandler(apps ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

type submitApplicationRequest struct {
	LoanAmount    float64         `json:"loanAmount"    validate:"gt=0"`
	LoanType      string          `json:"loanType"      validate:"required"`
	TenureYears   float64         `json:"tenureYears"   validate:"gt=0"`
	MonthlyIncome float64         `json:"monthlyIncome" validate:"gte=0"`
	FullName      string          `json:"fullName"      validate:"required,max=50"`
	Phone         string          `json:"phone"         validate:"required,phone"`
	Email         string          `json:"email"         validate:"required,email"`
	DOB           date            `json:"dob"`
	Address       *addressRequest `json:"address"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit files a loan application for the caller.
//
// @Summary      Submit an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitApplicationRequest  true  "Application"
// @Success      201   {object}  dataResponse[domain.Application]
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req submitApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.DOB.IsZero() {
		return domain.NewValidationError("dob is required")
	}

	app := domain.Application{
		LoanAmount:    req.LoanAmount,
		LoanType:      req.LoanType,
		TenureYears:   req.TenureYears,
		MonthlyIncome: req.MonthlyIncome,
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		DOB:           req.DOB.Time,
	}
	if addr := req.Address.toDomain(); addr != nil {
		app.Address = *addr
	}

	created, err := h.apps.Submit(c.Request().Context(), me.ID, app)
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues("application").Inc()
	return c.JSON(http.StatusCreated, withData(created, "Application submitted successfully"))
}

// Mine lists the caller's applications.
//
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listResponse[domain.Application]
// @Router       /applications/my [get]
func (h *ApplicationHandler) Mine(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	res, err := h.apps.ListMine(c.Request().Context(), me.ID, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paged(res))
}

// List returns applications for review.
//
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Match on fullName, phone, email or loanType"
// @Param        status    query     string  false  "Filter by status"
// @Param        loanType  query     string  false  "Filter by loan type"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listResponse[domain.Application]
// @Failure      403       {object}  ErrorResponse
// @Router       /applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	res, err := h.apps.List(c.Request().Context(), ports.ApplicationFilter{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		LoanType: c.QueryParam("loanType"),
		Page:     page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paged(res))
}

// Get returns one application with its applicant.
//
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  dataResponse[domain.Application]
// @Failure      404  {object}  ErrorResponse
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	app, err := h.apps.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, withData(app, ""))
}

// UpdateStatus records a review decision.
//
// @Summary      Update application status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Application id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  dataResponse[domain.Application]
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /applications/{id} [put]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	app, err := h.apps.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	metrics.ApplicationStatusChangesTotal.WithLabelValues(string(app.Status)).Inc()
	return c.JSON(http.StatusOK, withData(app, "Application status updated successfully"))
}

// Delete removes an application.
//
// @Summary      Delete an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c echo.Context) error {
	if err := h.apps.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageOK("Application deleted successfully"))
}

// Dashboard returns the admin overview counters.
//
// @Summary      Admin dashboard
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse[domain.Dashboard]
// @Failure      403  {object}  ErrorResponse
// @Router       /applications/admin/dashboard [get]
func (h *ApplicationHandler) Dashboard(c echo.Context) error {
	d, err := h.apps.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, withData(d, ""))
}
