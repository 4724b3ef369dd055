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
	createOrganizationErrMessage = "failed to create organization"
	updateOrganizationErrMessage = "failed to update organization"
	deleteOrganizationErrMessage = "failed to delete organization"
)

func NewOrganizationController(
	organizationService usecases.OrganizationService,
	fieldService usecases.FieldService,
	registrationService usecases.RegistrationService,
) *OrganizationController {
	return &OrganizationController{
		organizationService: organizationService,
		fieldService:        fieldService,
		registrationService: registrationService,
	}
}

var _ httpserver.Controller = &OrganizationController{}

type OrganizationController struct {
	organizationService usecases.OrganizationService
	fieldService        usecases.FieldService
	registrationService usecases.RegistrationService
}

func (c *OrganizationController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/organizations", c.listOrganizations())
	router.Handle("POST /v1/organizations", c.createOrganization())
	router.Handle("GET /v1/organizations/{id}", c.getOrganization())
	router.Handle("PUT /v1/organizations/{id}", c.updateOrganization())
	router.Handle("DELETE /v1/organizations/{id}", c.deleteOrganization())
	router.Handle("GET /v1/organizations/{id}/form-fields", c.getFormFields())
	router.Handle("PUT /v1/organizations/{id}/form-fields", c.updateFormFields())
	router.Handle("GET /v1/organizations/{id}/registrations", c.listRegistrations())
}

func (c *OrganizationController) listOrganizations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		organizations, total, err := c.organizationService.ListOrganizations(r.Context(), pagination)
		if err != nil {
			slog.Error("listing organizations", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list organizations")
			return
		}

		responses := make([]internal.OrganizationResponse, len(organizations))
		for i, organization := range organizations {
			responses[i] = internal.ToOrganizationResponse(organization)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}

func (c *OrganizationController) createOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.OrganizationCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		organization, err := regdomain.NewOrganizationBuilder().
			WithName(body.Name).
			WithSlug(body.Slug).
			WithEmail(body.Email).
			WithDescription(body.Description).
			Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := c.organizationService.CreateOrganization(r.Context(), organization); err != nil {
			slog.Error("creating organization", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, createOrganizationErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToOrganizationResponse(organization))
	}
}

func (c *OrganizationController) getOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		organization, err := c.organizationService.GetOrganization(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrOrganizationNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, organizationNotFoundErrMessage)
				return
			}
			slog.Error("getting organization", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to get organization")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToOrganizationResponse(organization))
	}
}

func (c *OrganizationController) updateOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.OrganizationUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		organization, err := c.organizationService.GetOrganization(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrOrganizationNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, organizationNotFoundErrMessage)
				return
			}
			slog.Error("getting organization", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateOrganizationErrMessage)
			return
		}

		if body.Name != nil {
			organization.Name = shareddomain.Name(*body.Name)
		}
		if body.Email != nil {
			organization.Email = *body.Email
		}
		if body.Description != nil {
			organization.Description = shareddomain.Description(*body.Description)
		}
		if body.IsActive != nil {
			if *body.IsActive {
				organization.Activate()
			} else {
				organization.Deactivate()
			}
		}

		if err := c.organizationService.UpdateOrganization(r.Context(), organization); err != nil {
			slog.Error("updating organization", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateOrganizationErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToOrganizationResponse(organization))
	}
}

func (c *OrganizationController) deleteOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		err := c.organizationService.DeleteOrganization(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrOrganizationNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, organizationNotFoundErrMessage)
				return
			}
			slog.Error("deleting organization", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, deleteOrganizationErrMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *OrganizationController) getFormFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		requirements, err := c.fieldService.ListFormFields(r.Context(), shareddomain.ID(id))
		if err != nil {
			slog.Error("listing form fields", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list form fields")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToFormFieldResponses(requirements))
	}
}

func (c *OrganizationController) updateFormFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.FormFieldsUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		requirements := make([]regdomain.FieldRequirement, 0, len(body.Fields))
		for _, field := range body.Fields {
			definition, err := c.fieldService.GetField(r.Context(), shareddomain.ID(field.FieldID))
			if err != nil {
				if errors.Is(err, usecases.ErrFieldNotFound) {
					httpserver.ReplyWithError(w, http.StatusBadRequest, "unknown field: "+field.FieldID)
					return
				}
				slog.Error("getting field definition", slog.String("error", err.Error()))
				httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to update form fields")
				return
			}
			requirements = append(requirements, regdomain.FieldRequirement{
				Field:      definition,
				IsRequired: field.IsRequired,
				IsActive:   field.IsActive,
				Order:      field.DisplayOrder,
			})
		}

		if err := c.fieldService.ReplaceFormFields(r.Context(), shareddomain.ID(id), requirements); err != nil {
			slog.Error("replacing form fields", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to update form fields")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *OrganizationController) listRegistrations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		registrations, total, err := c.registrationService.ListRegistrations(r.Context(), shareddomain.ID(id), pagination)
		if err != nil {
			slog.Error("listing registrations", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list registrations")
			return
		}

		responses := make([]internal.RegistrationResponse, len(registrations))
		for i, registration := range registrations {
			responses[i] = internal.ToRegistrationResponse(registration)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}
