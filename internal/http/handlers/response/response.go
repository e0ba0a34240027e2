package response

import (
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"encoding/json"
	"errors"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// detailedErrors keep their wrapped details in the response body, the rest
// of the taxonomy is rendered with the bare sentinel message.
var detailedErrors = []error{
	user.ErrInvalidInput,
	user.ErrWeakPassword,
}

var badRequestErrors = []error{
	user.ErrEmailAlreadyExists,
	user.ErrInvalidCredentials,
	user.ErrAlreadyAuthenticated,
	user.ErrInvalidOrExpiredToken,
	user.ErrUserDoesNotExist,
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, user.ErrUnauthenticated.Error(), http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderBadRequest(rw http.ResponseWriter, err error) {
	RenderError(rw, err.Error(), http.StatusBadRequest)
}

// RenderServiceError maps an error returned by a service to a response.
// Errors outside of the taxonomy are logged and rendered as 500.
func RenderServiceError(rw http.ResponseWriter, log logging.Logger, r *http.Request, err error) {
	if errors.Is(err, user.ErrUnauthenticated) {
		RenderUnauthorized(rw)
		return
	}
	for _, target := range detailedErrors {
		if errors.Is(err, target) {
			RenderBadRequest(rw, err)
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			RenderBadRequest(rw, target)
			return
		}
	}
	logging.Error(
		r.Context(),
		log,
		err,
		logging.Entry("method", r.Method),
		logging.Entry("path", r.URL.Path),
	)
	RenderInternalError(rw)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
