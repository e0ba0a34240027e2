package email

import (
	"authgate/internal/core/domain/user"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendTemplatedEmailInput
	err   error
}

func (f *fakeSES) SendTemplatedEmail(
	ctx context.Context,
	params *ses.SendTemplatedEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendTemplatedEmailOutput, error) {
	f.input = params
	return &ses.SendTemplatedEmailOutput{}, f.err
}

func newSender(t *testing.T, client sesClient) *EmailSender {
	t.Helper()
	base, err := url.Parse("https://auth.example.com")
	require.NoError(t, err)
	return &EmailSender{
		ses:                 client,
		sender:              "noreply@example.com",
		restoreLinkTemplate: "restore-link",
		restoreLinkBaseUrl:  *base,
	}
}

func TestRestoreLinkURL(t *testing.T) {
	cases := []struct {
		base     string
		expected string
	}{
		{base: "https://auth.example.com", expected: "https://auth.example.com/auth/restore/token/abc.def.ghi"},
		{base: "https://auth.example.com/", expected: "https://auth.example.com/auth/restore/token/abc.def.ghi"},
		{base: "http://localhost:8080/api", expected: "http://localhost:8080/api/auth/restore/token/abc.def.ghi"},
	}
	for _, testcase := range cases {
		t.Run(testcase.base, func(t *testing.T) {
			base, err := url.Parse(testcase.base)
			require.NoError(t, err)
			require.Equal(t, testcase.expected, RestoreLinkURL(*base, "abc.def.ghi"))
		})
	}
}

func TestSendRestoreLink(t *testing.T) {
	client := &fakeSES{}
	sender := newSender(t, client)

	err := sender.SendRestoreLink(context.Background(), user.RestoreLink{
		Email:     "test@test.test",
		Token:     "abc.def.ghi",
		ExpiresAt: time.Date(2023, 1, 2, 3, 4, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Equal(t, []string{"test@test.test"}, client.input.Destination.ToAddresses)
	require.Equal(t, "restore-link", *client.input.Template)
	require.Equal(t, "noreply@example.com", *client.input.Source)
	params := restoreLinkTemplateParams{}
	require.NoError(t, json.Unmarshal([]byte(*client.input.TemplateData), &params))
	require.Equal(t, "https://auth.example.com/auth/restore/token/abc.def.ghi", params.RestoreLinkUrl)
	require.Equal(t, "2023-01-02 03:04 UTC", params.ExpiresAt)
}

func TestSendRestoreLinkErrors(t *testing.T) {
	client := &fakeSES{err: errors.New("ses is down")}
	sender := newSender(t, client)

	err := sender.SendRestoreLink(context.Background(), user.RestoreLink{Token: "abc"})
	require.Error(t, err)
	require.Nil(t, client.input)

	err = sender.SendRestoreLink(context.Background(), user.RestoreLink{Email: "test@test.test", Token: "abc"})
	require.ErrorContains(t, err, "ses is down")
}
