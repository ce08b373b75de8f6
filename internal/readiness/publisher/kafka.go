// Package publisher delivers deadline notices to downstream consumers such
// as the notification service.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"readiness/internal/readiness/models"
	"readiness/pkg/platform/sentinel"
)

const (
	// HeaderNoticeKey carries the deduplication key of a notice.
	HeaderNoticeKey = "notice-key"
	HeaderKind      = "notice-kind"
)

// Kafka publishes notices as JSON records keyed by person, so all notices of
// one person land on one partition in order.
type Kafka struct {
	client *kgo.Client
	topic  string
}

func NewKafka(client *kgo.Client, topic string) *Kafka {
	return &Kafka{client: client, topic: topic}
}

// Publish produces notices synchronously and returns the first failure.
func (k *Kafka) Publish(ctx context.Context, notices ...models.DeadlineNotice) error {
	if len(notices) == 0 {
		return nil
	}
	records := make([]*kgo.Record, 0, len(notices))
	for _, n := range notices {
		value, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encode notice %s: %w", n.Key, err)
		}
		records = append(records, &kgo.Record{
			Topic: k.topic,
			Key:   []byte(n.PersonID.String()),
			Value: value,
			Headers: []kgo.RecordHeader{
				{Key: HeaderNoticeKey, Value: []byte(n.Key)},
				{Key: HeaderKind, Value: []byte(n.Kind)},
			},
		})
	}
	if err := k.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("publish notices: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
