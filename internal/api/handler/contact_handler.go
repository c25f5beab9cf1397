package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softsolution/lending-api/internal/api/metrics"
	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type ContactHandler struct {
	contacts ports.ContactService
}

func NewContactHandler(contacts ports.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type submitContactRequest struct {
	FullName string `json:"fullName" validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,phone"`
	Message  string `json:"message"  validate:"required,max=1000"`
}

// Submit stores a contact form message.
//
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      submitContactRequest  true  "Message"
// @Success      201   {object}  dataResponse[domain.Contact]
// @Failure      400   {object}  ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.contacts.Submit(c.Request().Context(), domain.Contact{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
	})
	if err != nil {
		return err
	}
	metrics.SubmissionsTotal.WithLabelValues("contact").Inc()
	return c.JSON(http.StatusCreated, withData(msg, "Message sent successfully"))
}

// List returns contact messages.
//
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Match on fullName, email or message"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Contact]
// @Router       /contact [get]
func (h *ContactHandler) List(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	res, err := h.contacts.List(c.Request().Context(), ports.ContactFilter{
		Search: c.QueryParam("search"),
		Page:   page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paged(res))
}

// Delete removes a contact message.
//
// @Summary      Delete a contact message
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /contact/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contacts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageOK("Message deleted successfully"))
}
