package main

import (
	"authgate/internal/app/deps"
	"authgate/internal/config"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	restoreLinkSubject = "Restore your password"
	restoreLinkHTML    = `<p>Someone asked to restore the password of your account.</p>
<p><a href="{{restoreLinkUrl}}">Set a new password</a></p>
<p>The link works once and expires at {{expiresAt}}. If it was not you, ignore this email.</p>`
	restoreLinkText = `Someone asked to restore the password of your account.

Set a new password: {{restoreLinkUrl}}

The link works once and expires at {{expiresAt}}. If it was not you, ignore this email.`
)

const usage = `usage: aws <command> [flags]

commands:
  create-template    create the restore link SES template
  delete-template    delete the restore link SES template
  send-template      send the restore link template to -to
`

func main() {
	if len(os.Args) < 2 {
		fail(fmt.Errorf("missing command\n%s", usage))
	}

	cfg, err := config.LoadAWS()
	if err != nil {
		fail(err)
	}
	awsCfg, err := deps.NewAwsConfig(*cfg)
	if err != nil {
		fail(err)
	}
	svc := ses.NewFromConfig(awsCfg)

	switch os.Args[1] {
	case "create-template":
		err = createEmailTemplate(svc, cfg.RestoreLinkTemplate, restoreLinkSubject, restoreLinkHTML, restoreLinkText)
	case "delete-template":
		err = deleteEmailTemplate(svc, cfg.RestoreLinkTemplate)
	case "send-template":
		flags := flag.NewFlagSet("send-template", flag.ExitOnError)
		to := flags.String("to", "", "recipient address")
		link := flags.String("link", "https://example.com/auth/restore/token/test", "restore link to render")
		flags.Parse(os.Args[2:])
		if *to == "" {
			fail(fmt.Errorf("-to is required"))
		}
		err = sendEmailTemplate(svc, cfg.EmailSender, *to, cfg.RestoreLinkTemplate, map[string]string{
			"restoreLinkUrl": *link,
			"expiresAt":      "never",
		})
	default:
		err = fmt.Errorf("unknown command %q\n%s", os.Args[1], usage)
	}
	if err != nil {
		fail(err)
	}
	fmt.Println("Success.")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func createEmailTemplate(svc *ses.Client, name, subject, htmlPart, textPart string) error {
	_, err := svc.CreateTemplate(context.Background(), &ses.CreateTemplateInput{
		Template: &types.Template{
			SubjectPart:  &subject,
			HtmlPart:     &htmlPart,
			TextPart:     &textPart,
			TemplateName: &name,
		},
	})
	return err
}

func deleteEmailTemplate(svc *ses.Client, name string) error {
	_, err := svc.DeleteTemplate(context.Background(), &ses.DeleteTemplateInput{TemplateName: &name})
	return err
}

func sendEmailTemplate(svc *ses.Client, sender, to, name string, params map[string]string) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	_, err = svc.SendTemplatedEmail(context.Background(), &ses.SendTemplatedEmailInput{
		Source: aws.String(sender),
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: []string{to},
		},
		Template:     &name,
		TemplateData: aws.String(string(data)),
	})
	return err
}
