package kafka

import (
	"fmt"
	"sync"

	"renov-srv/config"
	pkgkafka "renov-srv/pkg/kafka"
)

var (
	producerMu sync.Mutex
	producers  = make(map[string]pkgkafka.IProducer)
)

// ConnectProducer initializes a Kafka producer for the given topic.
// One producer is kept per topic; repeated calls return the existing one.
func ConnectProducer(cfg config.KafkaConfig, topic string) (pkgkafka.IProducer, error) {
	producerMu.Lock()
	defer producerMu.Unlock()

	if p, ok := producers[topic]; ok {
		return p, nil
	}

	p, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Brokers,
		Topic:   topic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kafka producer for %s: %w", topic, err)
	}

	producers[topic] = p
	return p, nil
}

// DisconnectProducers closes all producers and resets the registry.
func DisconnectProducers() error {
	producerMu.Lock()
	defer producerMu.Unlock()

	var firstErr error
	for topic, p := range producers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close Kafka producer for %s: %w", topic, err)
		}
		delete(producers, topic)
	}
	return firstErr
}
