package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dentalcare-be/internal/constant"
	"dentalcare-be/internal/dto"
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/pkg/logger"
	"dentalcare-be/internal/repository/memory"
	"dentalcare-be/internal/repository/specification"
	"dentalcare-be/internal/repository/unitofwork"
	"dentalcare-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const SummarizeSessionTopic = "SUMMARIZE_CHAT_SESSION"

// SummarizeSessionMessage is the async job emitted after a completed turn.
type SummarizeSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}

type IChatbotService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error)
	StreamChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, emit func(dto.StreamEvent) error) error
	GetLiveTranscript(messageId uuid.UUID) (string, bool)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

type chatbotService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	transcripts *memory.TranscriptRepository
	pubSub      *gochannel.GoChannel
	logger      logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	transcripts *memory.TranscriptRepository,
	pubSub *gochannel.GoChannel,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		transcripts: transcripts,
		pubSub:      pubSub,
		logger:      log,
	}
}

func systemPromptFor(assistantKind string) []llm.Message {
	switch assistantKind {
	case constant.AssistantKindTriage:
		return []llm.Message{
			{Role: constant.ChatMessageRoleUser, Content: constant.TriageSystemPrompt},
			{Role: constant.ChatMessageRoleModel, Content: constant.TriageAckPrompt},
		}
	default:
		return []llm.Message{
			{Role: constant.ChatMessageRoleUser, Content: constant.ReceptionistSystemPrompt},
			{Role: constant.ChatMessageRoleModel, Content: constant.ReceptionistAckPrompt},
		}
	}
}

func deriveTitle(content string) string {
	const maxLen = 60
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen]) + "..."
}

func (s *chatbotService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	kind := req.AssistantKind
	if kind == "" {
		kind = constant.AssistantKindReceptionist
	}

	session := &entity.ChatSession{
		Id:            uuid.New(),
		UserId:        userId,
		Title:         "New conversation",
		AssistantKind: kind,
		CreatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *chatbotService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.GetAllSessionsResponse, len(sessions))
	for i, session := range sessions {
		res[i] = dto.GetAllSessionsResponse{
			Id:            session.Id,
			Title:         session.Title,
			AssistantKind: session.AssistantKind,
			Summary:       session.Summary,
			CreatedAt:     session.CreatedAt,
			UpdatedAt:     session.UpdatedAt,
		}
	}
	return res, nil
}

func (s *chatbotService) findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.New("chat session not found")
	}
	return session, nil
}

func (s *chatbotService) GetChatHistory(ctx context.Context, userId, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwnedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.GetChatHistoryResponse, len(messages))
	for i, msg := range messages {
		content := msg.Content
		if msg.IsStreaming {
			// Serve the live transcript for an in-flight reply.
			if partial, ok := s.GetLiveTranscript(msg.Id); ok {
				content = partial
			}
		}
		res[i] = dto.GetChatHistoryResponse{
			Id:          msg.Id,
			Role:        msg.Role,
			Content:     content,
			IsStreaming: msg.IsStreaming,
			CreatedAt:   msg.CreatedAt,
		}
	}
	return res, nil
}

func (s *chatbotService) GetLiveTranscript(messageId uuid.UUID) (string, bool) {
	t, ok := s.transcripts.Get(messageId)
	if !ok {
		return "", false
	}
	return t.Accumulated, true
}

// StreamChat runs one assistant turn. The user message and an assistant
// placeholder are persisted before any token arrives; the placeholder is
// replaced with the final text on success and with a short notice on
// failure, so history never contains a dangling stream.
func (s *chatbotService) StreamChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, emit func(dto.StreamEvent) error) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwnedSession(ctx, uow, userId, req.ChatSessionId)
	if err != nil {
		return err
	}

	priorMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return err
	}

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleUser,
		Content:       req.Content,
		CreatedAt:     time.Now(),
	}
	placeholder := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleModel,
		Content:       "",
		IsStreaming:   true,
		CreatedAt:     time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ChatMessageRepository().Create(ctx, placeholder); err != nil {
		uow.Rollback()
		return err
	}
	if len(priorMessages) == 0 {
		session.Title = deriveTitle(req.Content)
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			uow.Rollback()
			return err
		}
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.transcripts.Save(&memory.Transcript{
		MessageId: placeholder.Id,
		SessionId: session.Id,
		UpdatedAt: time.Now(),
	})
	defer s.transcripts.Delete(placeholder.Id)

	history := systemPromptFor(session.AssistantKind)
	for _, msg := range priorMessages {
		if msg.IsStreaming {
			continue
		}
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	history = append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: req.Content})

	final, streamErr := s.llmProvider.ChatStream(ctx, history, func(token, accumulated string) error {
		s.transcripts.Append(placeholder.Id, accumulated)
		return emit(dto.StreamEvent{
			Type:        "token",
			MessageId:   placeholder.Id,
			Token:       token,
			Accumulated: accumulated,
		})
	})

	// A fresh unit of work: the request context may already be cancelled.
	finishCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	finishUow := s.uowFactory.NewUnitOfWork(finishCtx)

	if streamErr != nil {
		s.logger.Error("chatbot", "assistant stream failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"message_id": placeholder.Id.String(),
			"error":      streamErr.Error(),
		})

		placeholder.Content = "Sorry, something went wrong while generating this reply. Please try again."
		placeholder.IsStreaming = false
		if err := finishUow.ChatMessageRepository().Update(finishCtx, placeholder); err != nil {
			s.logger.Error("chatbot", "failed to finalize errored message", map[string]interface{}{
				"message_id": placeholder.Id.String(),
				"error":      err.Error(),
			})
		}

		_ = emit(dto.StreamEvent{
			Type:      "error",
			MessageId: placeholder.Id,
			Error:     streamErr.Error(),
		})
		return streamErr
	}

	placeholder.Content = final
	placeholder.IsStreaming = false
	if err := finishUow.ChatMessageRepository().Update(finishCtx, placeholder); err != nil {
		return err
	}

	if err := emit(dto.StreamEvent{
		Type:        "done",
		MessageId:   placeholder.Id,
		Accumulated: final,
	}); err != nil {
		return err
	}

	s.enqueueSummary(session.Id)
	return nil
}

func (s *chatbotService) enqueueSummary(sessionId uuid.UUID) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(SummarizeSessionMessage{SessionId: sessionId})
	if err != nil {
		return
	}
	msg := message.NewMessage(uuid.New().String(), payload)
	if err := s.pubSub.Publish(SummarizeSessionTopic, msg); err != nil {
		s.logger.Warn("chatbot", "failed to enqueue session summary", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}
}

func (s *chatbotService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findOwnedSession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		return err
	}

	return uow.Commit()
}
