package services

import (
	"context"
	"encoding/json"
	"fmt"

	"kitchen-inventory-service/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// EventPublisher fans recorded usage events out to interested consumers
// (alerting, analytics). Publishing is best-effort: a failed publish never
// fails the operation that produced the event.
type EventPublisher interface {
	PublishReport(ctx context.Context, report *models.Report) error
}

type SNSPublisher struct {
	client   *sns.Client
	topicARN string
}

// NewSNSPublisher builds an SNS-backed publisher for the given topic.
func NewSNSPublisher(ctx context.Context, topicARN string) (*SNSPublisher, error) {
	if topicARN == "" {
		return nil, fmt.Errorf("SNS topic ARN not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SNSPublisher{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
	}, nil
}

func (p *SNSPublisher) PublishReport(ctx context.Context, report *models.Report) error {
	msgBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(msgBytes)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"report_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(report.ReportType)),
			},
		},
	})
	return err
}
