package consumer

import (
	"context"

	"github.com/IBM/sarama"

	"renov-srv/internal/report/usecase"
)

type analysisTaskHandler struct {
	consumer *Consumer
}

func (h *analysisTaskHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *analysisTaskHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *analysisTaskHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.handleAnalysisTask(session.Context(), msg); err != nil {
			h.consumer.l.Errorf(context.Background(), "report.delivery.kafka.consumer.ConsumeClaim: Failed to process analysis task: %v", err)
			continue
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

// handleAnalysisTask runs one analysis continuation. Malformed messages
// are acked and dropped; they would never parse on retry either.
func (h *analysisTaskHandler) handleAnalysisTask(ctx context.Context, msg *sarama.ConsumerMessage) error {
	reportID, err := usecase.ParseAnalysisTask(msg.Value)
	if err != nil {
		h.consumer.l.Warnf(ctx, "report.delivery.kafka.consumer.handleAnalysisTask: Dropping malformed task at %s/%d/%d: %v",
			msg.Topic, msg.Partition, msg.Offset, err)
		return nil
	}

	return h.consumer.uc.Continue(ctx, reportID)
}
