package mapper

import (
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	e := &entity.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		AssistantKind: s.AssistantKind,
		Summary:       s.Summary,
		CreatedAt:     s.CreatedAt,
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		e.UpdatedAt = &updated
	}
	if s.DeletedAt.Valid {
		deleted := s.DeletedAt.Time
		e.DeletedAt = &deleted
		e.IsDeleted = true
	}
	return e
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	mo := &model.ChatSession{
		Id:            s.Id,
		UserId:        s.UserId,
		Title:         s.Title,
		AssistantKind: s.AssistantKind,
		Summary:       s.Summary,
		CreatedAt:     s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		mo.UpdatedAt = *s.UpdatedAt
	}
	return mo
}

func (m *ChatMapper) SessionsToEntities(sessions []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	e := &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		IsStreaming:   msg.IsStreaming,
		CreatedAt:     msg.CreatedAt,
	}
	if !msg.UpdatedAt.IsZero() {
		updated := msg.UpdatedAt
		e.UpdatedAt = &updated
	}
	if msg.DeletedAt.Valid {
		deleted := msg.DeletedAt.Time
		e.DeletedAt = &deleted
		e.IsDeleted = true
	}
	return e
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	mo := &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		IsStreaming:   msg.IsStreaming,
		CreatedAt:     msg.CreatedAt,
	}
	if msg.UpdatedAt != nil {
		mo.UpdatedAt = *msg.UpdatedAt
	}
	return mo
}

func (m *ChatMapper) MessagesToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, msg := range messages {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
