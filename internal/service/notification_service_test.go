package service

import (
	"context"
	"testing"
	"time"

	"dentalcare-be/internal/model"
	"dentalcare-be/internal/pkg/logger"
	"dentalcare-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	created []model.Notification
	users   []model.User
}

func (f *fakeNotificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return f.created, int64(len(f.created)), nil
}

func (f *fakeNotificationRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) GetUsersByRole(ctx context.Context, role string) ([]model.User, error) {
	return f.users, nil
}

type fakeDelivery struct {
	sent      map[uuid.UUID][]model.Notification
	broadcast []model.Notification
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{sent: make(map[uuid.UUID][]model.Notification)}
}

func (f *fakeDelivery) Send(userID uuid.UUID, n model.Notification) {
	f.sent[userID] = append(f.sent[userID], n)
}

func (f *fakeDelivery) Broadcast(n model.Notification) {
	f.broadcast = append(f.broadcast, n)
}

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewIsolatedLogger(t.TempDir() + "/test.log")
}

func TestHandleEventDeliversAppointmentToPatient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, testLogger(t))

	patientId := uuid.New()
	event := events.NewAppointmentEvent(events.TypeAppointmentBooked, uuid.New(), patientId, uuid.New(), "2026-09-14")

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	notif := repo.created[0]
	assert.Equal(t, patientId, notif.UserID)
	assert.Equal(t, events.TypeAppointmentBooked, notif.TypeCode)
	assert.Contains(t, notif.Message, "2026-09-14")

	require.Len(t, delivery.sent[patientId], 1)
}

func TestHandleEventFansOutSlotEventsToStaff(t *testing.T) {
	staffA := uuid.New()
	staffB := uuid.New()
	repo := &fakeNotificationRepo{
		users: []model.User{{Id: staffA}, {Id: staffB}},
	}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, testLogger(t))

	event := events.NewSlotEvent(events.TypeSlotBlocked, uuid.New(), uuid.New(), uuid.New())

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)

	assert.Len(t, repo.created, 2)
	assert.Len(t, delivery.sent[staffA], 1)
	assert.Len(t, delivery.sent[staffB], 1)
}

func TestHandleEventIgnoresUnknownTypes(t *testing.T) {
	repo := &fakeNotificationRepo{}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, testLogger(t))

	event := events.BaseEvent{Type: "USER_LOGIN", Data: map[string]interface{}{}, OccurredAt: time.Now()}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, repo.created)
	assert.Empty(t, delivery.sent)
}

func TestHandleEventBroadcastsSystemAnnouncements(t *testing.T) {
	repo := &fakeNotificationRepo{}
	delivery := newFakeDelivery()
	svc := NewNotificationService(repo, nil, delivery, testLogger(t))

	event := events.BaseEvent{
		Type: "SYSTEM_BROADCAST",
		Data: map[string]interface{}{
			"title":   "Holiday hours",
			"message": "The clinic closes early on Friday.",
		},
		OccurredAt: time.Now(),
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)

	// Broadcasts go straight to connected clients, nothing is persisted.
	assert.Empty(t, repo.created)
	require.Len(t, delivery.broadcast, 1)
	assert.Equal(t, "Holiday hours", delivery.broadcast[0].Title)
}

func TestBuildNotificationMetadataIncludesActionURL(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil, newFakeDelivery(), testLogger(t))

	appointmentId := uuid.New()
	event := events.NewAppointmentEvent(events.TypeAppointmentCancelled, appointmentId, uuid.New(), uuid.New(), "2026-10-01")

	rule := notificationRules[events.TypeAppointmentCancelled]
	notif := svc.buildNotification(uuid.New(), events.TypeAppointmentCancelled, rule, event)

	require.NotNil(t, notif.EntityID)
	assert.Equal(t, appointmentId, *notif.EntityID)
	assert.Contains(t, string(notif.Metadata), "/appointments/"+appointmentId.String())
}
