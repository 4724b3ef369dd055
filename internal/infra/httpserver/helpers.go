package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
}

func ReplyWithError(w http.ResponseWriter, statusCode int, errMsg string) {
	errResponse := &ErrorResponse{
		Message: errMsg,
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errResponse)
}

func ReplyJSONResponse(w http.ResponseWriter, statusCode int, output any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(output)
}

func DecodeJSONBody(r *http.Request, placeholder any) error {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}

	if err := json.Unmarshal(reqBody, placeholder); err != nil {
		return fmt.Errorf("unmarshaling json: %w", err)
	}

	return nil
}

func GetPathParam(r *http.Request, name string) string {
	return r.PathValue(name)
}

func GetQueryParam(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}

var keyValuePattern = regexp.MustCompile(`(\w+[\w \-_.]+):(\w+[\w \-_.]+)`)

func GetQueryParamMapKeyValue(r *http.Request, name string) (string, string) {
	queryVal := r.URL.Query().Get(name)
	kv := keyValuePattern.FindStringSubmatch(queryVal)
	if len(kv) < 3 {
		return "", ""
	}

	return kv[1], kv[2]
}

const (
	_defaultPage  = 1
	_defaultLimit = 10
	_maxLimit     = 100
)

type PaginationParams struct {
	Page  int
	Limit int
}

func DefaultPaginationParams() PaginationParams {
	return PaginationParams{Page: _defaultPage, Limit: _defaultLimit}
}

// ExtractPaginationParams reads page and limit from the query string,
// falling back to defaults for missing or out-of-range values.
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			params.Page = page
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 1 && limit <= _maxLimit {
			params.Limit = limit
		}
	}

	return params
}

// Offset converts the page number into a row offset.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PaginatedResponse struct {
	Data       any `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

func ReplyWithPaginatedData(w http.ResponseWriter, statusCode int, data any, total int, params PaginationParams) {
	response := PaginatedResponse{Data: data}
	response.Pagination.Page = params.Page
	response.Pagination.Limit = params.Limit
	response.Pagination.Total = total
	response.Pagination.TotalPages = (total + params.Limit - 1) / params.Limit

	ReplyJSONResponse(w, statusCode, response)
}
