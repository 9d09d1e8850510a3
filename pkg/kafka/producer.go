package kafka

import (
	"fmt"
	"os"
	"time"

	"github.com/IBM/sarama"

	"github.com/nais/grantor/pkg/config"
	"github.com/nais/grantor/pkg/event"
)

type Message []byte

type Producer interface {
	Produce(msg Message) (int64, error)
	ProduceEvent(event.Event) (int64, error)
	Close() error
}

type producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg config.KafkaConfig) (Producer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Return.Errors = true
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.ClientID, _ = os.Hostname()

	if cfg.TLS.Enabled {
		tlsCfg, err := tlsConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("loading kafka tls config: %w", err)
		}
		saramaCfg.Net.TLS.Enable = true
		saramaCfg.Net.TLS.Config = tlsCfg
	}

	syncProducer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &producer{
		producer: syncProducer,
		topic:    cfg.Topic,
	}, nil
}

func (p *producer) Produce(msg Message) (offset int64, err error) {
	producerMessage := &sarama.ProducerMessage{
		Topic:     p.topic,
		Value:     sarama.ByteEncoder(msg),
		Timestamp: time.Now(),
	}
	_, offset, err = p.producer.SendMessage(producerMessage)
	return
}

func (p *producer) ProduceEvent(e event.Event) (int64, error) {
	message, err := e.Marshal()
	if err != nil {
		return -1, fmt.Errorf("marshalling event: %w", err)
	}

	return p.Produce(message)
}

func (p *producer) Close() error {
	return p.producer.Close()
}
