package logout

import (
	c "authgate/internal/core/domain/common"
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/services"
	logout "authgate/internal/core/services/log_out"
	"authgate/internal/http/handlers/auth"
	"authgate/internal/http/handlers/response"
	"net/http"
)

type Handler struct {
	log     logging.Logger
	service services.Service[logout.Input, logout.Result]
	cookies auth.Cookies
}

func New(
	log logging.Logger,
	service services.Service[logout.Input, logout.Result],
	cookies auth.Cookies,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, service: service, cookies: cookies}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	_, err := h.service.Run(r.Context(), logout.Input{Token: c.NewOptional(token, ok)})
	h.cookies.Clear(rw)
	if err != nil {
		response.RenderServiceError(rw, h.log, r, err)
		return
	}
	response.Render(rw, struct{}{}, http.StatusCreated)
}
