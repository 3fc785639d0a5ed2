package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSPublisherPublishSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{
		id:       "topic",
		topicARN: "arn:aws:sns:us-east-1:000000000000:schools",
		client:   client,
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:us-east-1:000000000000:schools" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["dbn"]
	if !ok || aws.ToString(attr.StringValue) != "01M292" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("dbn attribute missing or wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"school_name":"Henry Street School"`) {
		t.Fatalf("Message missing school: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSPublisherPublishError(t *testing.T) {
	pub := &snsPublisher{
		id:       "topic",
		topicARN: "arn:aws:sns:us-east-1:000000000000:schools",
		client:   &fakeSNSClient{err: errors.New("boom")},
		log:      noopLogger{},
	}
	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}
