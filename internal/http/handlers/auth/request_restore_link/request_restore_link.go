package requestrestorelink

import (
	c "authgate/internal/core/domain/common"
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/services"
	requestrestorelink "authgate/internal/core/services/request_restore_link"
	"authgate/internal/http/handlers/response"
	"encoding/json"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

const TEST_TOKEN_HEADER = "x-test-restore-token"

type Handler struct {
	log        logging.Logger
	service    services.Service[requestrestorelink.Input, requestrestorelink.Result]
	isTestMode bool
}

func New(
	log logging.Logger,
	service services.Service[requestrestorelink.Input, requestrestorelink.Result],
	isTestMode bool,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderBadRequest(rw, err)
		return
	}

	result, err := h.service.Run(r.Context(), requestrestorelink.Input{Email: c.NewEmail(input.Email)})
	if err != nil {
		response.RenderServiceError(rw, h.log, r, err)
		return
	}

	if h.isTestMode && result.Token.IsPresent {
		rw.Header().Set(TEST_TOKEN_HEADER, string(result.Token.Value))
	}
	rw.WriteHeader(http.StatusCreated)
}
