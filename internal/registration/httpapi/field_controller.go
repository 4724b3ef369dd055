package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"foodops-server/internal/infra/httpserver"
	"foodops-server/internal/infra/utils"
	regdomain "foodops-server/internal/registration/domain"
	"foodops-server/internal/registration/httpapi/internal"
	"foodops-server/internal/registration/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

const (
	fieldNotFoundErrMessage = "field definition not found"
	systemFieldErrMessage   = "system fields cannot be modified"
)

func NewFieldController(fieldService usecases.FieldService) *FieldController {
	return &FieldController{
		fieldService: fieldService,
	}
}

var _ httpserver.Controller = &FieldController{}

type FieldController struct {
	fieldService usecases.FieldService
}

func (c *FieldController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/registration-fields", c.listFields())
	router.Handle("POST /v1/registration-fields", c.createField())
	router.Handle("GET /v1/registration-fields/{id}", c.getField())
	router.Handle("PUT /v1/registration-fields/{id}", c.updateField())
	router.Handle("DELETE /v1/registration-fields/{id}", c.deleteField())
}

func (c *FieldController) listFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		fields, total, err := c.fieldService.ListFields(r.Context(), pagination)
		if err != nil {
			slog.Error("listing field definitions", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list fields")
			return
		}

		responses := make([]internal.FieldDefinitionResponse, len(fields))
		for i, field := range fields {
			responses[i] = internal.ToFieldDefinitionResponse(field)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}

func (c *FieldController) createField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.FieldDefinitionCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if body.Name == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "name is required")
			return
		}

		field := regdomain.FieldDefinition{
			ID:      shareddomain.ID(utils.GenerateUUID()),
			Name:    shareddomain.Name(body.Name),
			Label:   shareddomain.Label(body.Label),
			Type:    regdomain.FieldType(body.Type).Effective(),
			Options: body.Options,
		}

		if err := c.fieldService.CreateField(r.Context(), field); err != nil {
			slog.Error("creating field definition", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to create field")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToFieldDefinitionResponse(field))
	}
}

func (c *FieldController) getField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		field, err := c.fieldService.GetField(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrFieldNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, fieldNotFoundErrMessage)
				return
			}
			slog.Error("getting field definition", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to get field")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToFieldDefinitionResponse(field))
	}
}

func (c *FieldController) updateField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.FieldDefinitionCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		field, err := c.fieldService.GetField(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrFieldNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, fieldNotFoundErrMessage)
				return
			}
			slog.Error("getting field definition", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to update field")
			return
		}

		if body.Name != "" {
			field.Name = shareddomain.Name(body.Name)
		}
		if body.Label != "" {
			field.Label = shareddomain.Label(body.Label)
		}
		if body.Type != "" {
			field.Type = regdomain.FieldType(body.Type).Effective()
		}
		if body.Options != nil {
			field.Options = body.Options
		}

		if err := c.fieldService.UpdateField(r.Context(), field); err != nil {
			if errors.Is(err, usecases.ErrSystemFieldImmutable) {
				httpserver.ReplyWithError(w, http.StatusForbidden, systemFieldErrMessage)
				return
			}
			slog.Error("updating field definition", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to update field")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToFieldDefinitionResponse(field))
	}
}

func (c *FieldController) deleteField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		err := c.fieldService.DeleteField(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrFieldNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, fieldNotFoundErrMessage)
				return
			}
			if errors.Is(err, usecases.ErrSystemFieldImmutable) {
				httpserver.ReplyWithError(w, http.StatusForbidden, systemFieldErrMessage)
				return
			}
			slog.Error("deleting field definition", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to delete field")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
