package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employment_history/internal/service"
	"github.com/locvowork/employment_history/internal/service/serviceutils"
)

type PersonHandler struct {
	svc *service.EmploymentService
}

func NewPersonHandler(svc *service.EmploymentService) *PersonHandler {
	return &PersonHandler{svc: svc}
}

// PreviewHandler builds a person with their positions and returns the derived
// values. Nothing is stored.
func (h *PersonHandler) PreviewHandler(c echo.Context) error {
	var req PersonRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body",
			errors.New(strings.Join(validationMessages(err), " ")))
	}

	in := service.PersonInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Address != nil {
		in.Address = &service.AddressInput{
			Number:     req.Address.Number,
			Street:     req.Address.Street,
			City:       req.Address.City,
			Region:     req.Address.Region,
			PostalCode: req.Address.PostalCode,
		}
	}
	for i, pos := range req.Positions {
		p, err := requestInput(pos)
		if err != nil {
			status, prefix := mapDomainError(err)
			return serviceutils.ResponseError(c, status, prefix, fmt.Errorf("position %d: %w", i+1, err))
		}
		in.Positions = append(in.Positions, p)
	}

	preview, err := h.svc.PreviewPerson(c.Request().Context(), in)
	if err != nil {
		status, prefix := mapDomainError(err)
		return serviceutils.ResponseError(c, status, prefix, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Person built successfully", preview)
}
