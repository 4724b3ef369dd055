package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"foodops-server/internal/infra/httpserver"
	messagingdomain "foodops-server/internal/messaging/domain"
	"foodops-server/internal/messaging/httpapi/internal"
	"foodops-server/internal/messaging/usecases"
	shareddomain "foodops-server/internal/shared_kernel/domain"
)

const templateNotFoundErrMessage = "email template not found"

func NewTemplateController(templateService usecases.TemplateService) *TemplateController {
	return &TemplateController{
		templateService: templateService,
	}
}

var _ httpserver.Controller = &TemplateController{}

type TemplateController struct {
	templateService usecases.TemplateService
}

func (c *TemplateController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/email-templates", c.listTemplates())
	router.Handle("POST /v1/email-templates", c.createTemplate())
	router.Handle("GET /v1/email-templates/{id}", c.getTemplate())
	router.Handle("PUT /v1/email-templates/{id}", c.updateTemplate())
	router.Handle("DELETE /v1/email-templates/{id}", c.deleteTemplate())
}

func (c *TemplateController) listTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		templates, total, err := c.templateService.ListTemplates(r.Context(), pagination)
		if err != nil {
			slog.Error("listing email templates", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list email templates")
			return
		}

		responses := make([]internal.EmailTemplateResponse, len(templates))
		for i, template := range templates {
			responses[i] = internal.ToEmailTemplateResponse(template)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}

func (c *TemplateController) createTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.EmailTemplateCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		template, err := messagingdomain.NewEmailTemplateBuilder().
			WithName(body.Name).
			WithSubject(body.Subject).
			WithBody(body.Body).
			Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := c.templateService.CreateTemplate(r.Context(), template); err != nil {
			slog.Error("creating email template", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to create email template")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToEmailTemplateResponse(template))
	}
}

func (c *TemplateController) getTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		template, err := c.templateService.GetTemplate(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrTemplateNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, templateNotFoundErrMessage)
				return
			}
			slog.Error("getting email template", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to get email template")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToEmailTemplateResponse(template))
	}
}

func (c *TemplateController) updateTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.EmailTemplateUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		template, err := c.templateService.GetTemplate(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrTemplateNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, templateNotFoundErrMessage)
				return
			}
			slog.Error("getting email template", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to update email template")
			return
		}

		if body.Subject != nil {
			template.Subject = *body.Subject
		}
		if body.Body != nil {
			template.Body = *body.Body
		}
		if body.IsActive != nil {
			template.IsActive = *body.IsActive
		}

		if err := c.templateService.UpdateTemplate(r.Context(), template); err != nil {
			slog.Error("updating email template", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to update email template")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToEmailTemplateResponse(template))
	}
}

func (c *TemplateController) deleteTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		if err := c.templateService.DeleteTemplate(r.Context(), shareddomain.ID(id)); err != nil {
			if errors.Is(err, usecases.ErrTemplateNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, templateNotFoundErrMessage)
				return
			}
			slog.Error("deleting email template", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to delete email template")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
