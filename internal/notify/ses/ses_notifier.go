package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/notify"
)

// API is the subset of the SES v2 client the notifier uses.
type API interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Notifier e-mails analysis results through Amazon SES.
type Notifier struct {
	client      API
	fromAddress string
	fromName    string
}

// NewSESNotifier creates an SES-backed ResultNotifier.
func NewSESNotifier(ctx context.Context, region, fromAddress, fromName string) (*Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return NewWithClient(sesv2.NewFromConfig(cfg), fromAddress, fromName), nil
}

// NewWithClient creates a Notifier around an existing SES client.
func NewWithClient(client API, fromAddress, fromName string) *Notifier {
	return &Notifier{client: client, fromAddress: fromAddress, fromName: fromName}
}

func (n *Notifier) NotifyResult(ctx context.Context, toEmail string, analysis *domain.Analysis) error {
	msg, err := notify.BuildMessage(analysis)
	if err != nil {
		return err
	}

	from := fmt.Sprintf("%s <%s>", n.fromName, n.fromAddress)
	_, err = n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
