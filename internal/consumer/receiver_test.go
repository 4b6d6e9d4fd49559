package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestReceiver_ForwardsMessages(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockConsumer.On("QueueURL").Return("http://localhost:9324/queue/checkout-events")
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&awssqs.ReceiveMessageOutput{
			Messages: []types.Message{
				sqsMessage("m1", `{"session_id":"s1","event_type":"checkout_start","timestamp":1766702551}`),
			},
		}, nil).Once()
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&awssqs.ReceiveMessageOutput{}, nil)

	receiver := NewReceiver(mockConsumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 0,
		BufferSize:      10,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan types.Message, 10)
	done := make(chan struct{})
	go func() {
		receiver.Start(ctx, out)
		close(done)
	}()

	select {
	case msg := <-out:
		assert.Equal(t, "m1", aws.ToString(msg.MessageId))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for forwarded message")
	}

	cancel()
	<-done
}

func TestReceiver_ClosesOutputOnShutdown(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockConsumer.On("QueueURL").Return("http://localhost:9324/queue/checkout-events")
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.Anything).
		Return(&awssqs.ReceiveMessageOutput{}, nil)

	receiver := NewReceiver(mockConsumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 0,
		BufferSize:      10,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan types.Message)
	done := make(chan struct{})
	go func() {
		receiver.Start(ctx, out)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for receiver shutdown")
	}

	_, open := <-out
	assert.False(t, open)
}
