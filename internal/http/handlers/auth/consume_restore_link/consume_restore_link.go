package consumerestorelink

import (
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	consumerestorelink "authgate/internal/core/services/consume_restore_link"
	"authgate/internal/http/handlers/response"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	URL_PARAM_TOKEN = "restoreToken"
	TOKEN_MAX_LEN   = 2048
)

type Handler struct {
	log     logging.Logger
	service services.Service[consumerestorelink.Input, consumerestorelink.Result]
}

func New(
	log logging.Logger,
	service services.Service[consumerestorelink.Input, consumerestorelink.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, service: service}
}

type Input struct {
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, validation.Required),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, URL_PARAM_TOKEN)
	if token == "" || len(token) > TOKEN_MAX_LEN {
		response.RenderBadRequest(rw, user.ErrInvalidOrExpiredToken)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderBadRequest(rw, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		consumerestorelink.Input{
			Token:       user.RestoreToken(token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		response.RenderServiceError(rw, h.log, r, err)
		return
	}
	rw.WriteHeader(http.StatusCreated)
}
