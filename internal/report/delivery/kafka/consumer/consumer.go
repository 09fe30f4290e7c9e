package consumer

import (
	"context"
	"fmt"

	pkgKafka "renov-srv/pkg/kafka"
)

// ConsumeAnalysisTasks starts consuming the analysis task topic. It
// returns after the consumer group is running; consumption happens in
// background goroutines until the context is cancelled.
func (c *Consumer) ConsumeAnalysisTasks(ctx context.Context) error {
	group, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers: c.kafkaConfig.Brokers,
		GroupID: c.kafkaConfig.ConsumerGroupID,
	})
	if err != nil {
		return fmt.Errorf("failed to create analysis consumer group: %w", err)
	}
	c.analysisGroup = group

	handler := &analysisTaskHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, []string{c.kafkaConfig.AnalysisTopic}, handler); err != nil {
					if ctx.Err() != nil {
						return
					}
					c.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumeAnalysisTasks: Consumer error: %v", err)
				}
			}
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "report.delivery.kafka.consumer.ConsumeAnalysisTasks: Consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", c.kafkaConfig.AnalysisTopic)
	return nil
}
