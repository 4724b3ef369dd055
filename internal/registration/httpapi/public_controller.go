package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"foodops-server/internal/infra/httpserver"
	"foodops-server/internal/infra/utils"
	"foodops-server/internal/registration/httpapi/internal"
	"foodops-server/internal/registration/usecases"
)

const (
	organizationNotFoundErrMessage = "organization not found"
	shiftNotFoundErrMessage        = "shift not found"
	registrationAcceptedMessage    = "registration received"
	signupAcceptedMessage          = "signup received"
)

func NewPublicController(
	organizationService usecases.OrganizationService,
	fieldService usecases.FieldService,
	registrationService usecases.RegistrationService,
	signupService usecases.SignupService,
) *PublicController {
	return &PublicController{
		organizationService: organizationService,
		fieldService:        fieldService,
		registrationService: registrationService,
		signupService:       signupService,
	}
}

var _ httpserver.Controller = &PublicController{}

// PublicController serves the unauthenticated endpoints volunteer-facing
// forms are built from.
type PublicController struct {
	organizationService usecases.OrganizationService
	fieldService        usecases.FieldService
	registrationService usecases.RegistrationService
	signupService       usecases.SignupService
}

func (c *PublicController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/public/organizations/{orgName}/registration-fields", c.getRegistrationFields())
	router.Handle("POST /v1/public/organizations/{orgName}/volunteer-registration", c.submitRegistration())
	router.Handle("GET /v1/public/shift-signup/{category}/{shiftName}", c.getShiftForm())
	router.Handle("POST /v1/public/shift-signup/{category}/{shiftName}", c.submitSignup())
}

func (c *PublicController) getRegistrationFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgName := r.PathValue("orgName")

		organization, err := c.organizationService.GetOrganizationBySlug(r.Context(), orgName)
		if err != nil {
			if errors.Is(err, usecases.ErrOrganizationNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, organizationNotFoundErrMessage)
				return
			}
			slog.Error("getting organization", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to load registration fields")
			return
		}

		requirements, err := c.fieldService.ListFormFields(r.Context(), organization.ID)
		if err != nil {
			slog.Error("listing form fields", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to load registration fields")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRegistrationFieldResponses(requirements))
	}
}

func (c *PublicController) submitRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgName := r.PathValue("orgName")

		var body internal.SubmitRegistrationRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		_, err := c.registrationService.RegisterVolunteer(r.Context(), orgName, body.ToValueMap())
		if err != nil {
			var validationErr usecases.SubmissionValidationError
			switch {
			case errors.Is(err, usecases.ErrOrganizationNotFound):
				httpserver.ReplyWithError(w, http.StatusNotFound, organizationNotFoundErrMessage)
			case errors.As(err, &validationErr):
				httpserver.ReplyWithError(w, http.StatusUnprocessableEntity, validationErr.Error())
			default:
				slog.Error("registering volunteer", slog.String("error", err.Error()))
				httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to submit registration")
			}
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.MessageResponse{Message: registrationAcceptedMessage})
	}
}

func (c *PublicController) getShiftForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.PathValue("category")
		shiftName := r.PathValue("shiftName")

		shift, err := c.signupService.GetShiftForSignup(r.Context(), category, shiftName)
		if err != nil {
			if errors.Is(err, usecases.ErrShiftNotFound) {
				httpserver.ReplyWithError(w, http.StatusNotFound, shiftNotFoundErrMessage)
				return
			}
			slog.Error("getting shift", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to load shift")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToShiftResponse(shift))
	}
}

func (c *PublicController) submitSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.PathValue("category")
		shiftName := r.PathValue("shiftName")

		var body internal.SubmitSignupRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		shiftDate, err := utils.ParseDate(body.ShiftDate)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "shift_date must be YYYY-MM-DD")
			return
		}

		_, err = c.signupService.SignUp(r.Context(), category, shiftName, shiftDate, body.ToValueMap())
		if err != nil {
			var validationErr usecases.SubmissionValidationError
			switch {
			case errors.Is(err, usecases.ErrShiftNotFound):
				httpserver.ReplyWithError(w, http.StatusNotFound, shiftNotFoundErrMessage)
			case errors.Is(err, usecases.ErrShiftFull):
				httpserver.ReplyWithError(w, http.StatusConflict, usecases.ErrShiftFull.Error())
			case errors.As(err, &validationErr):
				httpserver.ReplyWithError(w, http.StatusUnprocessableEntity, validationErr.Error())
			default:
				slog.Error("signing up for shift", slog.String("error", err.Error()))
				httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to submit signup")
			}
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusCreated, internal.MessageResponse{Message: signupAcceptedMessage})
	}
}
