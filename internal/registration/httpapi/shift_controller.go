package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"foodops-server/internal/infra/httpserver"
	regdomain "foodops-server/internal/registration/domain"
	"foodops-server/internal/registration/httpapi/internal"
	"foodops-server/internal/registration/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

const (
	createShiftErrMessage = "failed to create shift"
	updateShiftErrMessage = "failed to update shift"
	deleteShiftErrMessage = "failed to delete shift"
)

func NewShiftController(signupService usecases.SignupService) *ShiftController {
	return &ShiftController{
		signupService: signupService,
	}
}

var _ httpserver.Controller = &ShiftController{}

type ShiftController struct {
	signupService usecases.SignupService
}

func (c *ShiftController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/shifts", c.listShifts())
	router.Handle("POST /v1/shifts", c.createShift())
	router.Handle("GET /v1/shifts/{id}", c.getShift())
	router.Handle("PUT /v1/shifts/{id}", c.updateShift())
	router.Handle("DELETE /v1/shifts/{id}", c.deleteShift())
	router.Handle("GET /v1/shifts/{id}/signups", c.listSignups())
}

func (c *ShiftController) listShifts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := httpserver.GetQueryParam(r, "category")
		if category == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "category is required")
			return
		}

		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		shifts, total, err := c.signupService.ListShiftsByCategory(r.Context(), category, pagination)
		if err != nil {
			slog.Error("listing shifts", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list shifts")
			return
		}

		responses := make([]internal.ShiftResponse, len(shifts))
		for i, shift := range shifts {
			responses[i] = internal.ToShiftResponse(shift)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}

func (c *ShiftController) createShift() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.ShiftCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if body.Category == "" || body.Name == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "category and name are required")
			return
		}

		shift, err := regdomain.NewShiftBuilder().
			WithCategory(body.Category).
			WithName(body.Name).
			WithDescription(body.Description).
			WithCapacity(body.Capacity).
			WithDynamicFields(internal.ToShiftRequirements(body.DynamicFields)).
			Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := c.signupService.CreateShift(r.Context(), shift); err != nil {
			slog.Error("creating shift", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, createShiftErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToShiftResponse(shift))
	}
}

func (c *ShiftController) getShift() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		shift, err := c.signupService.GetShift(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrShiftNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, shiftNotFoundErrMessage)
				return
			}
			slog.Error("getting shift", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to get shift")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToShiftResponse(shift))
	}
}

func (c *ShiftController) updateShift() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.ShiftUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		shift, err := c.signupService.GetShift(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrShiftNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, shiftNotFoundErrMessage)
				return
			}
			slog.Error("getting shift", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateShiftErrMessage)
			return
		}

		if body.Description != nil {
			shift.Description = shareddomain.Description(*body.Description)
		}
		if body.Capacity != nil {
			shift.Capacity = *body.Capacity
		}
		if body.DynamicFields != nil {
			shift.DynamicFields = internal.ToShiftRequirements(*body.DynamicFields)
		}
		if body.IsActive != nil {
			shift.IsActive = *body.IsActive
		}

		if err := c.signupService.UpdateShift(r.Context(), shift); err != nil {
			slog.Error("updating shift", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateShiftErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToShiftResponse(shift))
	}
}

func (c *ShiftController) deleteShift() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		err := c.signupService.DeleteShift(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrShiftNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, shiftNotFoundErrMessage)
				return
			}
			slog.Error("deleting shift", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, deleteShiftErrMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *ShiftController) listSignups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		signups, total, err := c.signupService.ListSignups(r.Context(), shareddomain.ID(id), pagination)
		if err != nil {
			slog.Error("listing signups", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list signups")
			return
		}

		responses := make([]internal.SignupResponse, len(signups))
		for i, signup := range signups {
			responses[i] = internal.ToSignupResponse(signup)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}
