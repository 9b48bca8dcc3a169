package queue

import (
	"context"

	"github.com/WinterOat/vault_service/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewKafkaConsumer(broker, topic, groupID string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3, //10KB
		MaxBytes: 10e6, //10MB
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: "Vault Service",
	}
}

// Listen consumes account events until the process exits. Handler errors
// are logged and the loop keeps going.
func (kc *KafkaConsumer) Listen() {
	for {
		msg, err := kc.Reader.ReadMessage(context.Background())
		if err != nil {
			logrus.WithError(err).Errorf("[%s] read error", kc.ServiceName)
			continue
		}

		if err := kc.Handler.HandleMessage(string(msg.Value)); err != nil {
			logrus.WithError(err).Errorf("[%s] handler error", kc.ServiceName)
		}
	}
}
