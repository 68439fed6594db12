package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"dentalcare-be/internal/model"
	"dentalcare-be/internal/pkg/logger"
	"dentalcare-be/internal/repository"
	"dentalcare-be/pkg/events"
	pktNats "dentalcare-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// notificationRule maps an event code to who gets told about it and how
// the message reads. Rules live in code; the clinic does not reconfigure
// them at runtime.
type notificationRule struct {
	Title      string
	Template   string
	TargetType string // "SELF" | "ROLE"
	TargetRole string
	EntityType string
}

var notificationRules = map[string]notificationRule{
	events.TypeSlotCreated: {
		Title:      "Schedule updated",
		Template:   "A new availability slot was added.",
		TargetType: "ROLE",
		TargetRole: "staff",
		EntityType: "slot",
	},
	events.TypeSlotBlocked: {
		Title:      "Slot blocked",
		Template:   "An availability slot was blocked.",
		TargetType: "ROLE",
		TargetRole: "staff",
		EntityType: "slot",
	},
	events.TypeSlotUnblocked: {
		Title:      "Slot reopened",
		Template:   "A blocked availability slot was reopened.",
		TargetType: "ROLE",
		TargetRole: "staff",
		EntityType: "slot",
	},
	events.TypeSlotDeleted: {
		Title:      "Slot removed",
		Template:   "An availability slot was removed from the schedule.",
		TargetType: "ROLE",
		TargetRole: "staff",
		EntityType: "slot",
	},
	events.TypeAppointmentBooked: {
		Title:      "Appointment booked",
		Template:   "Your appointment on {date} is confirmed.",
		TargetType: "SELF",
		EntityType: "appointment",
	},
	events.TypeAppointmentCancelled: {
		Title:      "Appointment cancelled",
		Template:   "Your appointment on {date} was cancelled.",
		TargetType: "SELF",
		EntityType: "appointment",
	},
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	// Subscribe to all events with a durable consumer
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects carry the stream prefix; the rule table keys on the
	// bare event code.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	if typeCode == "SYSTEM_BROADCAST" {
		return s.handleBroadcast(event)
	}

	rule, ok := notificationRules[typeCode]
	if !ok {
		// Events without a rule (e.g. USER_LOGIN) are not notified.
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, rule, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", typeCode), map[string]interface{}{"error": err})
		return err // NATS will retry
	}

	for _, userID := range recipients {
		notif := s.buildNotification(userID, typeCode, rule, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
	}

	return nil
}

// handleBroadcast pushes a system announcement to every connected client.
// Announcements are transient; nothing is persisted per user.
func (s *NotificationService) handleBroadcast(event events.Event) error {
	payload := event.Payload()
	title, _ := payload["title"].(string)
	msg, _ := payload["message"].(string)

	if s.delivery != nil {
		s.delivery.Broadcast(model.Notification{
			ID:        uuid.New(),
			TypeCode:  "SYSTEM_BROADCAST",
			Title:     title,
			Message:   msg,
			CreatedAt: time.Now(),
		})
	}
	return nil
}

func (s *NotificationService) resolveRecipients(ctx context.Context, rule notificationRule, event events.Event) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	switch rule.TargetType {
	case "SELF":
		// Appointment events carry the patient's user id.
		key := "patient_id"
		if _, ok := event.Payload()[key]; !ok {
			key = "user_id"
		}
		if uidStr, ok := event.Payload()[key].(string); ok {
			if uid, err := uuid.Parse(uidStr); err == nil {
				userIDs = append(userIDs, uid)
			}
		} else {
			s.logger.Warn("NotificationService", fmt.Sprintf("TargetType SELF but no recipient id in payload for event %s", event.EventType()), nil)
		}

	case "ROLE":
		users, err := s.repo.GetUsersByRole(ctx, rule.TargetRole)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			userIDs = append(userIDs, u.Id)
		}
	}

	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, typeCode string, rule notificationRule, event events.Event) model.Notification {
	// Simple Template Engine
	msg := rule.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	var entityID *uuid.UUID
	entityKey := rule.EntityType + "_id"
	if eidStr, ok := payload[entityKey].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	// Metadata - enrich with action_url for deep linking
	metaMap := make(map[string]interface{})
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", rule.EntityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		TypeCode:   typeCode,
		Title:      rule.Title,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: rule.EntityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
