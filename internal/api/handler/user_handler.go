package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/softsolution/lending-api/internal/core/domain"
	"github.com/softsolution/lending-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type addressRequest struct {
	HouseNumber string `json:"houseNumber"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

func (a *addressRequest) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		HouseNumber: a.HouseNumber,
		Street:      a.Street,
		City:        a.City,
		State:       a.State,
		Pincode:     a.Pincode,
	}
}

type updateProfileRequest struct {
	FullName string          `json:"fullName" validate:"omitempty,max=50"`
	Email    string          `json:"email"    validate:"omitempty,email"`
	Phone    string          `json:"phone"    validate:"omitempty,phone"`
	DOB      *date           `json:"dob"`
	Address  *addressRequest `json:"address"`
}

type profileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

// Profile returns the caller's own record.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.users.Profile(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Success: true, User: user})
}

// UpdateProfile edits the caller's name, contact details, birth date and address.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), me.ID, domain.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		DOB:      req.DOB.ptr(),
		Address:  req.Address.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{Success: true, Message: "Profile updated successfully", User: user})
}
