package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer delivers account mail. The SES implementation is used when AWS is
// configured; the log implementation keeps local development self-contained.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to string, verifyURL string) error
}

type LogMailer struct{}

func (LogMailer) SendVerificationEmail(_ context.Context, to string, verifyURL string) error {
	log.Printf("verification mail for %s: %s", to, verifyURL)
	return nil
}

type SESMailer struct {
	client *ses.Client
	sender string
}

func NewSESMailer(ctx context.Context) (*SESMailer, error) {
	sender := os.Getenv("SES_EMAIL")
	if sender == "" {
		return nil, fmt.Errorf("SES_EMAIL is not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

func (mailer *SESMailer) SendVerificationEmail(ctx context.Context, to string, verifyURL string) error {
	subject := "Verify your email address"
	body := fmt.Sprintf("Welcome to Nutrilog!\n\nOpen the link below to verify your email:\n%s\n\nThe link expires in 24 hours.", verifyURL)

	input := &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(mailer.sender),
	}

	if _, err := mailer.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}
