package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/riskibarqy/recliiga/internal/platform/logging"
	"github.com/riskibarqy/recliiga/internal/usecase"
)

type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// SESSender delivers transactional email through AWS SESv2.
type SESSender struct {
	client sesAPI
	sender string
	logger *logging.Logger
}

// NewSESSender uses static credentials when both keys are set and the
// default AWS credential chain otherwise.
func NewSESSender(ctx context.Context, cfg SESConfig, logger *logging.Logger) (*SESSender, error) {
	if strings.TrimSpace(cfg.Region) == "" {
		return nil, fmt.Errorf("ses region is required")
	}
	if strings.TrimSpace(cfg.Sender) == "" {
		return nil, fmt.Errorf("ses sender is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newSESSender(sesv2.NewFromConfig(awsCfg), cfg.Sender, logger), nil
}

func newSESSender(client sesAPI, sender string, logger *logging.Logger) *SESSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &SESSender{client: client, sender: strings.TrimSpace(sender), logger: logger}
}

func (s *SESSender) Send(ctx context.Context, msg usecase.Email) error {
	recipient := strings.TrimSpace(msg.To)
	if recipient == "" {
		return fmt.Errorf("%w: recipient is required", usecase.ErrInvalidInput)
	}

	body := &types.Body{}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{recipient}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
		FromEmailAddress: aws.String(s.sender),
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		s.logger.ErrorContext(ctx, "send ses email failed", "recipient", recipient, "subject", msg.Subject, "error", err)
		return fmt.Errorf("%w: send ses email: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nil
}

// LogSender writes emails to the log instead of sending them.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg usecase.Email) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("%w: recipient is required", usecase.ErrInvalidInput)
	}
	s.logger.InfoContext(ctx, "email delivery disabled, logging message", "recipient", msg.To, "subject", msg.Subject)
	return nil
}
