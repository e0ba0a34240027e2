package me

import (
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/services"
	getuserbysessiontoken "authgate/internal/core/services/get_user_by_session_token"
	"authgate/internal/http/handlers/response"
	"net/http"
)

type Handler struct {
	log     logging.Logger
	service services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
}

func New(
	log logging.Logger,
	service services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), getuserbysessiontoken.Input{})
	if err != nil {
		response.RenderServiceError(rw, h.log, r, err)
		return
	}
	response.Render(rw, response.NewUserResult(result.User), http.StatusOK)
}
