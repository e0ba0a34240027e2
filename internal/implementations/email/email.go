package email

import (
	"authgate/internal/core/domain/user"
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// RestoreLinkPath is the path, relative to the public base URL, a restore
// token is appended to.
const RestoreLinkPath = "auth/restore/token"

type sesClient interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type EmailSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender              string
	restoreLinkTemplate string
	restoreLinkBaseUrl  url.URL
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	restoreLinkTemplate string,
	restoreLinkBaseUrl url.URL,
) *EmailSender {
	return &EmailSender{
		ses:                 ses.NewFromConfig(awsConfig),
		sender:              sender,
		restoreLinkTemplate: restoreLinkTemplate,
		restoreLinkBaseUrl:  restoreLinkBaseUrl,
	}
}

// RestoreLinkURL builds the link the user follows to set a new password.
func RestoreLinkURL(base url.URL, token user.RestoreToken) string {
	return base.JoinPath(RestoreLinkPath, string(token)).String()
}

func (s *EmailSender) SendRestoreLink(ctx context.Context, link user.RestoreLink) error {
	if link.Email == "" {
		return errors.New("restore link email is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		restoreLinkTemplateParams{
			RestoreLinkUrl: RestoreLinkURL(s.restoreLinkBaseUrl, link.Token),
			ExpiresAt:      link.ExpiresAt.UTC().Format("2006-01-02 15:04 MST"),
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(link.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.restoreLinkTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type restoreLinkTemplateParams struct {
	RestoreLinkUrl string `json:"restoreLinkUrl"`
	ExpiresAt      string `json:"expiresAt"`
}
