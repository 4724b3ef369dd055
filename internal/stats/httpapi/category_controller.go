package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"foodops-server/internal/infra/httpserver"
	shareddomain "foodops-server/internal/shared_kernel/domain"
	statsdomain "foodops-server/internal/stats/domain"
	"foodops-server/internal/stats/httpapi/internal"
	"foodops-server/internal/stats/usecases"
)

const (
	categoryNotFoundErrMessage = "weighing category not found"
	createCategoryErrMessage   = "failed to create weighing category"
	updateCategoryErrMessage   = "failed to update weighing category"
	deleteCategoryErrMessage   = "failed to delete weighing category"
)

func NewCategoryController(categoryService usecases.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

var _ httpserver.Controller = &CategoryController{}

type CategoryController struct {
	categoryService usecases.CategoryService
}

func (c *CategoryController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/weighing-categories", c.listCategories())
	router.Handle("POST /v1/weighing-categories", c.createCategory())
	router.Handle("GET /v1/weighing-categories/{id}", c.getCategory())
	router.Handle("PUT /v1/weighing-categories/{id}", c.updateCategory())
	router.Handle("DELETE /v1/weighing-categories/{id}", c.deleteCategory())
}

func (c *CategoryController) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		categories, total, err := c.categoryService.ListCategories(r.Context(), pagination)
		if err != nil {
			slog.Error("listing weighing categories", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list weighing categories")
			return
		}

		responses := make([]internal.WeighingCategoryResponse, len(categories))
		for i, category := range categories {
			responses[i] = internal.ToWeighingCategoryResponse(category)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}

func (c *CategoryController) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.WeighingCategoryCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if body.Name == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "name is required")
			return
		}

		category, err := statsdomain.NewWeighingCategoryBuilder().
			WithName(body.Name).
			WithKgPerUnit(body.KgPerUnit).
			WithDisplayOrder(body.DisplayOrder).
			Build()
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := c.categoryService.CreateCategory(r.Context(), category); err != nil {
			slog.Error("creating weighing category", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, createCategoryErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToWeighingCategoryResponse(category))
	}
}

func (c *CategoryController) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		category, err := c.categoryService.GetCategory(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrCategoryNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, categoryNotFoundErrMessage)
				return
			}
			slog.Error("getting weighing category", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to get weighing category")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToWeighingCategoryResponse(category))
	}
}

func (c *CategoryController) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.WeighingCategoryUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		category, err := c.categoryService.GetCategory(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrCategoryNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, categoryNotFoundErrMessage)
				return
			}
			slog.Error("getting weighing category", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateCategoryErrMessage)
			return
		}

		if body.Name != nil {
			category.Name = shareddomain.Name(*body.Name)
		}
		if body.KgPerUnit != nil {
			category.KgPerUnit = *body.KgPerUnit
		}
		if body.DisplayOrder != nil {
			category.DisplayOrder = *body.DisplayOrder
		}
		if body.IsActive != nil {
			if *body.IsActive {
				category.Activate()
			} else {
				category.Deactivate()
			}
		}

		if err := c.categoryService.UpdateCategory(r.Context(), category); err != nil {
			if errors.Is(err, statsdomain.ErrInvalidKgPerUnit) {
				httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.Error("updating weighing category", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, updateCategoryErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToWeighingCategoryResponse(category))
	}
}

func (c *CategoryController) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		if err := c.categoryService.DeleteCategory(r.Context(), shareddomain.ID(id)); err != nil {
			if errors.Is(err, usecases.ErrCategoryNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, categoryNotFoundErrMessage)
				return
			}
			slog.Error("deleting weighing category", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, deleteCategoryErrMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
