package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/emrgen/mapshare/internal/compress"
	"github.com/sirupsen/logrus"
)

const changeTopic = "mapshare.record.changes"

var _ ChangeQueue = (*KafkaQueue)(nil)

// KafkaQueue carries record changes between processes through a kafka
// topic. Envelopes are gzip-compressed JSON.
type KafkaQueue struct {
	producer *kafka.Producer
	consumer *kafka.Consumer
	encoder  compress.Compress
}

func NewKafkaQueue(brokers, group string) (*KafkaQueue, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return nil, err
	}

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"group.id":          group,
		"auto.offset.reset": "latest",
	})
	if err != nil {
		producer.Close()
		return nil, err
	}

	return &KafkaQueue{
		producer: producer,
		consumer: consumer,
		encoder:  compress.NewGZip(),
	}, nil
}

func (k *KafkaQueue) Publish(ctx context.Context, change *RecordChange) error {
	marshal, err := json.Marshal(change)
	if err != nil {
		return err
	}

	value, err := k.encoder.Encode(marshal)
	if err != nil {
		return err
	}

	topic := changeTopic
	return k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(change.DocumentID),
		Value:          value,
	}, nil)
}

func (k *KafkaQueue) Subscribe(ctx context.Context) (<-chan *RecordChange, error) {
	if err := k.consumer.SubscribeTopics([]string{changeTopic}, nil); err != nil {
		return nil, err
	}

	ch := make(chan *RecordChange, 64)

	go func() {
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			msg, err := k.consumer.ReadMessage(time.Second)
			if err != nil {
				if kerr, ok := err.(kafka.Error); ok && kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				logrus.Errorf("change feed read failed: %v", err)
				continue
			}

			buf, err := k.encoder.Decode(msg.Value)
			if err != nil {
				logrus.Errorf("change feed envelope decode failed: %v", err)
				continue
			}

			change := &RecordChange{}
			if err := json.Unmarshal(buf, change); err != nil {
				logrus.Errorf("change feed envelope unmarshal failed: %v", err)
				continue
			}

			select {
			case ch <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (k *KafkaQueue) Close() error {
	k.producer.Flush(int((5 * time.Second).Milliseconds()))
	k.producer.Close()
	return k.consumer.Close()
}
