package server

import (
	"net/http"

	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/labstack/echo/v4"
)

type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Birthday     string `json:"birthday"`
}

type specialDateRequest struct {
	DateName  string `json:"dateName"`
	DateValue string `json:"dateValue"`
	Notes     string `json:"notes"`
}

// handleCreateContact adds an address-book entry for the authenticated user
func (s *Server) handleCreateContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if req.Email != "" && !validEmail(req.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Valid email is required"})
	}
	if req.Phone != "" && !validPhone(req.Phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "Valid phone number required"})
	}
	if len(errs) > 0 {
		return failValidation(c, "Validation failed", errs)
	}

	// Owner comes from the verified token, never from the request
	contact, err := s.store.Contacts().Create(c.Request().Context(), &model.Contact{
		UserID:       identity(c).UserID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Relationship: req.Relationship,
		Birthday:     req.Birthday,
	})
	if err != nil {
		return s.failInternal(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"contact": contact,
	})
}

// handleListContacts returns the authenticated user's contacts, newest first
func (s *Server) handleListContacts(c echo.Context) error {
	contacts, err := s.store.Contacts().ListByUser(c.Request().Context(), identity(c).UserID)
	if err != nil {
		return s.failInternal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"contacts": contacts,
	})
}

// handleDeleteContact removes a contact and its special dates. A contact
// that does not exist and one owned by someone else produce the same
// response, so existence is never leaked.
func (s *Server) handleDeleteContact(c echo.Context) error {
	deleted, err := s.store.Contacts().Delete(c.Request().Context(), identity(c).UserID, c.Param("id"))
	if err != nil {
		return s.failInternal(c, err)
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "Contact not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// handleCreateSpecialDate adds a date under a contact the user owns
func (s *Server) handleCreateSpecialDate(c echo.Context) error {
	contactID := c.Param("id")

	owned, err := s.store.Contacts().Owned(c.Request().Context(), identity(c).UserID, contactID)
	if err != nil {
		return s.failInternal(c, err)
	}
	if !owned {
		return fail(c, http.StatusNotFound, "Contact not found")
	}

	var req specialDateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	var errs []FieldError
	if req.DateName == "" {
		errs = append(errs, FieldError{Field: "dateName", Message: "Date name is required"})
	}
	if req.DateValue == "" {
		errs = append(errs, FieldError{Field: "dateValue", Message: "Date value is required"})
	}
	if len(errs) > 0 {
		return failValidation(c, "Validation failed", errs)
	}

	date, err := s.store.SpecialDates().Create(c.Request().Context(), &model.SpecialDate{
		ContactID: contactID,
		DateName:  req.DateName,
		DateValue: req.DateValue,
		Notes:     req.Notes,
	})
	if err != nil {
		return s.failInternal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"specialDate": date,
	})
}

// handleListSpecialDates lists the dates under a contact the user owns
func (s *Server) handleListSpecialDates(c echo.Context) error {
	contactID := c.Param("id")

	owned, err := s.store.Contacts().Owned(c.Request().Context(), identity(c).UserID, contactID)
	if err != nil {
		return s.failInternal(c, err)
	}
	if !owned {
		return fail(c, http.StatusNotFound, "Contact not found")
	}

	dates, err := s.store.SpecialDates().ListByContact(c.Request().Context(), contactID)
	if err != nil {
		return s.failInternal(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"specialDates": dates,
	})
}

// handleDeleteSpecialDate removes a special date owned through its contact
func (s *Server) handleDeleteSpecialDate(c echo.Context) error {
	deleted, err := s.store.SpecialDates().Delete(c.Request().Context(), identity(c).UserID, c.Param("id"))
	if err != nil {
		return s.failInternal(c, err)
	}
	if !deleted {
		return fail(c, http.StatusNotFound, "Special date not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
