package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	p := NewEventPublisher(writer)
	p.now = func() time.Time { return time.Unix(1700000000, 0) }

	food := "Food"
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, "42", string(msgs[0].Key))

			var ev map[string]any
			require.NoError(t, json.Unmarshal(msgs[0].Value, &ev))
			assert.Equal(t, EventTransactionCreated, ev["event"])
			assert.Equal(t, "15000", ev["amount"])
			assert.Equal(t, "Food", ev["category"])
			assert.Equal(t, float64(1700000000), ev["timestamp"])
			return nil
		})

	p.Publish(context.Background(), models.TransactionEvent{
		Event:         EventTransactionCreated,
		TransactionID: 42,
		UserID:        1,
		Type:          models.Expense,
		Amount:        decimal.NewFromInt(15000),
		Category:      &food,
		Date:          "2024-01-02",
	})
}

func TestEventPublisher_WriteErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		NewEventPublisher(writer).Publish(context.Background(), models.TransactionEvent{Event: EventTransactionDeleted, TransactionID: 1})
	})
}

func TestEventPublisher_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		NewEventPublisher(nil).Publish(context.Background(), models.TransactionEvent{Event: EventTransactionDeleted})
	})
}
