package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"foodops-server/internal/infra/httpserver"
	"foodops-server/internal/infra/utils"
	shareddomain "foodops-server/internal/shared_kernel/domain"
	statsdomain "foodops-server/internal/stats/domain"
	"foodops-server/internal/stats/httpapi/internal"
	"foodops-server/internal/stats/usecases"
)

const (
	donationNotFoundErrMessage = "donation not found"
	invalidDateErrMessage      = "date must be YYYY-MM-DD"
)

func NewDonationController(donationService usecases.DonationService) *DonationController {
	return &DonationController{
		donationService: donationService,
	}
}

var _ httpserver.Controller = &DonationController{}

type DonationController struct {
	donationService usecases.DonationService
}

func (c *DonationController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/detail-donations", c.listDonations())
	router.Handle("POST /v1/detail-donations", c.recordDonation())
	router.Handle("GET /v1/detail-donations/{id}", c.getDonation())
	router.Handle("PUT /v1/detail-donations/{id}", c.updateDonation())
	router.Handle("DELETE /v1/detail-donations/{id}", c.deleteDonation())
}

func (c *DonationController) listDonations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawDate := httpserver.GetQueryParam(r, "date")
		if rawDate == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "date is required")
			return
		}

		date, err := utils.ParseDate(rawDate)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidDateErrMessage)
			return
		}

		paginationParams := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{
			Limit:  paginationParams.Limit,
			Offset: paginationParams.Offset(),
		}

		donations, total, err := c.donationService.ListDonationsByDate(r.Context(), date, pagination)
		if err != nil {
			slog.Error("listing donations", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list donations")
			return
		}

		responses := make([]internal.DonationResponse, len(donations))
		for i, donation := range donations {
			responses[i] = internal.ToDonationResponse(donation)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, paginationParams)
	}
}

func (c *DonationController) recordDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.DonationCreateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if body.CategoryID == "" {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "category_id is required")
			return
		}

		date, err := utils.ParseDate(body.Date)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidDateErrMessage)
			return
		}

		donation, err := c.donationService.RecordDonation(r.Context(), usecases.DonationInput{
			CategoryID:  shareddomain.ID(body.CategoryID),
			Donor:       body.Donor,
			WeightValue: body.Weight,
			Date:        date,
			Notes:       body.Notes,
		})
		if err != nil {
			c.replyDonationError(w, err, "failed to record donation")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.ToDonationResponse(donation))
	}
}

func (c *DonationController) getDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		donation, err := c.donationService.GetDonation(r.Context(), shareddomain.ID(id))
		if err != nil {
			if errors.Is(err, usecases.ErrDonationNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, donationNotFoundErrMessage)
				return
			}
			slog.Error("getting donation", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to get donation")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToDonationResponse(donation))
	}
}

func (c *DonationController) updateDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body internal.DonationUpdateRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		input := usecases.DonationInput{
			CategoryID:  shareddomain.ID(body.CategoryID),
			Donor:       body.Donor,
			WeightValue: body.Weight,
			Notes:       body.Notes,
		}
		if body.Date != "" {
			date, err := utils.ParseDate(body.Date)
			if err != nil {
				httpserver.ReplyWithError(w, http.StatusBadRequest, invalidDateErrMessage)
				return
			}
			input.Date = date
		}

		donation, err := c.donationService.UpdateDonation(r.Context(), shareddomain.ID(id), input)
		if err != nil {
			c.replyDonationError(w, err, "failed to update donation")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToDonationResponse(donation))
	}
}

func (c *DonationController) deleteDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		if err := c.donationService.DeleteDonation(r.Context(), shareddomain.ID(id)); err != nil {
			if errors.Is(err, usecases.ErrDonationNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, donationNotFoundErrMessage)
				return
			}
			slog.Error("deleting donation", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to delete donation")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *DonationController) replyDonationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecases.ErrDonationNotFound):
		httpserver.ReplyWithError(w, http.StatusNotFound, donationNotFoundErrMessage)
	case errors.Is(err, usecases.ErrCategoryNotFound):
		httpserver.ReplyWithError(w, http.StatusBadRequest, "unknown weighing category")
	case errors.Is(err, statsdomain.ErrNegativeWeight):
		httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(fallback, slog.String("error", err.Error()))
		httpserver.ReplyWithError(w, http.StatusInternalServerError, fallback)
	}
}
