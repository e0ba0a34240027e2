package loginwithemail

import (
	c "authgate/internal/core/domain/common"
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	loginwithemail "authgate/internal/core/services/log_in_with_email"
	"authgate/internal/http/handlers/auth"
	"authgate/internal/http/handlers/response"
	"encoding/json"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	log     logging.Logger
	service services.Service[loginwithemail.Input, loginwithemail.Result]
	cookies auth.Cookies
}

func New(
	log logging.Logger,
	service services.Service[loginwithemail.Input, loginwithemail.Result],
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

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
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

	currentToken, hasToken := auth.ParseToken(r)
	result, err := h.service.Run(
		r.Context(),
		loginwithemail.Input{
			Email:        c.NewEmail(input.Email),
			Password:     user.RawPassword(input.Password),
			CurrentToken: c.NewOptional(currentToken, hasToken),
		},
	)
	if err != nil {
		response.RenderServiceError(rw, h.log, r, err)
		return
	}

	h.cookies.Set(rw, result.Token)
	response.Render(rw, response.NewUserResult(result.User), http.StatusOK)
}
