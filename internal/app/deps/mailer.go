package deps

import (
	"authgate/internal/config"
	dl "authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/implementations/email"
	"authgate/internal/implementations/logging"
	"authgate/internal/rabbitmq"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// MailerDeps holds what the restore link mailer needs. It never touches
// the DB or Redis.
type MailerDeps struct {
	Config    *config.MailerConfig
	AwsConfig aws.Config
	Logger    dl.Logger
	Rabbitmq  *rabbitmq.Connection

	Now func() time.Time

	RestoreLinkSender user.RestoreLinkSender
}

func InitMailerDeps() (*MailerDeps, func()) {
	deps := &MailerDeps{}

	cfg, err := config.LoadMailer()
	if err != nil {
		panic(err)
	}
	deps.Config = cfg

	logger := logging.NewZapLogger(cfg.IsTestMode)
	deps.Logger = logger

	awsCfg, err := NewAwsConfig(cfg.AWS)
	if err != nil {
		logger.Error(context.Background(), "Could not load AWS config.", dl.Entry("err", err))
		panic(err)
	}
	deps.AwsConfig = awsCfg

	deps.Rabbitmq = dialRabbitmq(cfg.RabbitMQ, logger)
	closeRabbitmqConn := closeRabbitmq(deps.Rabbitmq, logger)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RestoreLinkSender = email.NewEmailSender(
		deps.AwsConfig,
		cfg.AWS.EmailSender,
		cfg.AWS.RestoreLinkTemplate,
		cfg.RestoreLinkBaseURL,
	)

	return deps, func() {
		closeRabbitmqConn()
		logger.Sync()
	}
}

func NewAwsConfig(cfg config.AWS) (aws.Config, error) {
	return awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.Region),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
}
