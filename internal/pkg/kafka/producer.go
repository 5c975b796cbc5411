package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ds124wfegd/jpegify/config"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const dialTimeout = 10 * time.Second

type Producer interface {
	SendMessage(ctx context.Context, key string, message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer connects to the configured brokers and makes sure the topic
// exists. When publishing is disabled or no broker answers, a producer that
// only logs is returned so uploads keep working.
func NewProducer(cfg config.KafkaConfig) Producer {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		logrus.Info("Kafka publishing disabled, using log producer")
		return &mockProducer{topic: cfg.Topic}
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		logrus.WithError(err).WithField("brokers", cfg.Brokers).Warn("Kafka connection failed, using log producer instead")
		return &mockProducer{topic: cfg.Topic}
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.WithError(err).Info("Could not create topic (might already exist)")
	}

	logrus.WithField("brokers", cfg.Brokers).Info("Connected to Kafka")
	return &kafkaProducer{
		writer: newWriter(cfg),
		topic:  cfg.Topic,
	}
}

func newWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func buildMessage(key string, message interface{}) (kafka.Message, error) {
	if key == "" {
		return kafka.Message{}, errors.New("empty message key")
	}
	value, err := json.Marshal(message)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}, nil
}

func (p *kafkaProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	msg, err := buildMessage(key, message)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"topic": p.topic, "key": key}).Debug("Message sent")
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// mockProducer для работы без Kafka
type mockProducer struct {
	topic string
}

func (m *mockProducer) SendMessage(ctx context.Context, key string, message interface{}) error {
	if _, err := buildMessage(key, message); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"topic": m.topic, "key": key}).Debug("MOCK: message not published")
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
