// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"dentalcare-be/internal/constant"
	"dentalcare-be/internal/repository/specification"
	"dentalcare-be/internal/repository/unitofwork"
	"dentalcare-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService summarizes chat sessions in the background so the
// session list can show a recap without an extra LLM call per request.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload SummarizeSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal summary job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to load session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}
	if session == nil {
		// Session deleted between turn and job. Nothing to do.
		msg.Ack()
		return
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: payload.SessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load messages for session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	var b strings.Builder
	for _, m := range chatMessages {
		if m.IsStreaming {
			continue
		}
		role := "Patient"
		if m.Role == constant.ChatMessageRoleModel {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	if b.Len() == 0 {
		msg.Ack()
		return
	}

	prompt := fmt.Sprintf(constant.SessionSummaryPrompt, b.String())
	summary, err := cs.llmProvider.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[ERROR] Failed to summarize session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	summary = strings.TrimSpace(summary)
	if err := uow.ChatSessionRepository().UpdateSummary(ctx, session.Id, summary); err != nil {
		log.Printf("[ERROR] Failed to store summary for session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
