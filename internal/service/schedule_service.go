package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dentalcare-be/internal/dto"
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/mapper"
	"dentalcare-be/internal/pkg/logger"
	rcache "dentalcare-be/internal/repository/cache"
	"dentalcare-be/internal/repository/specification"
	"dentalcare-be/internal/repository/unitofwork"
	"dentalcare-be/pkg/events"
	pktNats "dentalcare-be/pkg/nats"
	"dentalcare-be/pkg/schedule"

	"github.com/google/uuid"
)

type IScheduleService interface {
	GetDaySchedule(ctx context.Context, dentistId uuid.UUID, date string) (*dto.DayScheduleResponse, error)
	ListSlots(ctx context.Context, dentistId uuid.UUID) ([]dto.SlotResponse, error)
	CreateAvailabilitySlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	BlockSlot(ctx context.Context, slotId uuid.UUID, reason string) error
	UnblockSlot(ctx context.Context, slotId uuid.UUID) error
	DeleteSlot(ctx context.Context, slotId uuid.UUID) error
	SyncFromUpstream(ctx context.Context, req *dto.SyncScheduleRequest) (*dto.SyncScheduleResponse, error)
}

type scheduleService struct {
	uowFactory     unitofwork.RepositoryFactory
	resolver       *schedule.Resolver
	mapper         *mapper.ScheduleMapper
	cache          *rcache.ScheduleCache
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger

	upstreamURL    string
	upstreamAPIKey string
	httpClient     *http.Client
}

func NewScheduleService(
	uowFactory unitofwork.RepositoryFactory,
	resolver *schedule.Resolver,
	cache *rcache.ScheduleCache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	upstreamURL, upstreamAPIKey string,
) IScheduleService {
	return &scheduleService{
		uowFactory:     uowFactory,
		resolver:       resolver,
		mapper:         mapper.NewScheduleMapper(),
		cache:          cache,
		eventPublisher: eventPublisher,
		logger:         log,
		upstreamURL:    upstreamURL,
		upstreamAPIKey: upstreamAPIKey,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
	}
}

func slotToResponse(s *entity.AvailabilitySlot) dto.SlotResponse {
	res := dto.SlotResponse{
		Id:             s.Id,
		DentistId:      s.DentistId,
		ClinicId:       s.ClinicId,
		DayOfWeek:      s.DayOfWeek,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		IsRecurring:    s.IsRecurring,
		EffectiveFrom:  s.EffectiveFrom,
		EffectiveUntil: s.EffectiveUntil,
		IsBlocked:      s.IsBlocked,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
	}
	if s.BlockReason != nil {
		res.BlockReason = *s.BlockReason
	}
	return res
}

func (s *scheduleService) GetDaySchedule(ctx context.Context, dentistId uuid.UUID, date string) (*dto.DayScheduleResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}

	if cached, ok := s.cache.GetDay(ctx, dentistId, date); ok {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	slots, err := uow.AvailabilitySlotRepository().FindAll(ctx,
		specification.ByDentistID{DentistID: dentistId},
		specification.ActiveSlots{},
		specification.OrderBy{Field: "start_time"},
	)
	if err != nil {
		return nil, err
	}

	target, _ := time.Parse("2006-01-02", date)
	matched := s.resolver.SlotsForDate(s.mapper.ToResolverSlots(slots), target)

	// Index stored slots so matched ids map back to full records.
	byId := make(map[string]*entity.AvailabilitySlot, len(slots))
	for _, slot := range slots {
		byId[slot.Id.String()] = slot
	}

	res := &dto.DayScheduleResponse{
		DentistId: dentistId,
		Date:      date,
		Slots:     make([]dto.SlotResponse, 0, len(matched)),
	}
	for _, m := range matched {
		if stored, ok := byId[m.Id.String()]; ok {
			res.Slots = append(res.Slots, slotToResponse(stored))
		}
	}

	if err := s.cache.SetDay(ctx, res); err != nil {
		s.logger.Warn("schedule", "failed to cache day schedule", map[string]interface{}{
			"dentist_id": dentistId.String(),
			"date":       date,
			"error":      err.Error(),
		})
	}

	return res, nil
}

func (s *scheduleService) ListSlots(ctx context.Context, dentistId uuid.UUID) ([]dto.SlotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	slots, err := uow.AvailabilitySlotRepository().FindAll(ctx,
		specification.ByDentistID{DentistID: dentistId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		out[i] = slotToResponse(slot)
	}
	return out, nil
}

func (s *scheduleService) CreateAvailabilitySlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	// Identifiers fail fast; everything else falls back to defaults.
	if req.DentistId == uuid.Nil {
		return nil, errors.New("dentistId is required")
	}
	if req.ClinicId == uuid.Nil {
		return nil, errors.New("clinicId is required")
	}

	dayOfWeek := 0
	if req.DayOfWeek != nil {
		normalized, ok := schedule.Normalize(schedule.Slot{DayOfWeek: req.DayOfWeek})
		if !ok {
			return nil, fmt.Errorf("dayOfWeek %d is out of range", *req.DayOfWeek)
		}
		dayOfWeek = *normalized.DayOfWeek
	}

	startTime := req.StartTime
	if startTime == "" {
		startTime = "09:00"
	}
	endTime := req.EndTime
	if endTime == "" {
		endTime = "17:00"
	}
	if endTime <= startTime {
		return nil, errors.New("endTime must be after startTime")
	}

	isRecurring := false
	if req.IsRecurring != nil {
		isRecurring = *req.IsRecurring
	}

	today := schedule.FormatDate(time.Now())
	effectiveFrom := req.EffectiveFrom
	if effectiveFrom == "" {
		effectiveFrom = today
	}
	effectiveUntil := req.EffectiveUntil
	if effectiveUntil == "" {
		if isRecurring {
			// Open-ended recurring slots default to a year out.
			effectiveUntil = schedule.FormatDate(time.Now().AddDate(1, 0, 0))
		} else {
			effectiveUntil = effectiveFrom
		}
	}

	slot := &entity.AvailabilitySlot{
		Id:             uuid.New(),
		DentistId:      req.DentistId,
		ClinicId:       req.ClinicId,
		DayOfWeek:      dayOfWeek,
		StartTime:      startTime,
		EndTime:        endTime,
		IsRecurring:    isRecurring,
		EffectiveFrom:  effectiveFrom,
		EffectiveUntil: effectiveUntil,
		IsBlocked:      false,
		IsActive:       true,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AvailabilitySlotRepository().Create(ctx, slot); err != nil {
		return nil, err
	}

	s.afterSlotChange(ctx, events.TypeSlotCreated, slot.Id, slot.DentistId, slot.ClinicId)

	res := slotToResponse(slot)
	return &res, nil
}

func (s *scheduleService) BlockSlot(ctx context.Context, slotId uuid.UUID, reason string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	slot, err := uow.AvailabilitySlotRepository().FindOne(ctx, specification.ByID{ID: slotId})
	if err != nil {
		return err
	}
	if slot == nil {
		return errors.New("slot not found")
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	if err := uow.AvailabilitySlotRepository().SetBlocked(ctx, slotId, true, reasonPtr); err != nil {
		return err
	}

	s.afterSlotChange(ctx, events.TypeSlotBlocked, slot.Id, slot.DentistId, slot.ClinicId)
	return nil
}

func (s *scheduleService) UnblockSlot(ctx context.Context, slotId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	slot, err := uow.AvailabilitySlotRepository().FindOne(ctx, specification.ByID{ID: slotId})
	if err != nil {
		return err
	}
	if slot == nil {
		return errors.New("slot not found")
	}

	if err := uow.AvailabilitySlotRepository().SetBlocked(ctx, slotId, false, nil); err != nil {
		return err
	}

	s.afterSlotChange(ctx, events.TypeSlotUnblocked, slot.Id, slot.DentistId, slot.ClinicId)
	return nil
}

func (s *scheduleService) DeleteSlot(ctx context.Context, slotId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	slot, err := uow.AvailabilitySlotRepository().FindOne(ctx, specification.ByID{ID: slotId})
	if err != nil {
		return err
	}
	if slot == nil {
		return errors.New("slot not found")
	}

	if err := uow.AvailabilitySlotRepository().Delete(ctx, slotId); err != nil {
		return err
	}

	s.afterSlotChange(ctx, events.TypeSlotDeleted, slot.Id, slot.DentistId, slot.ClinicId)
	return nil
}

// afterSlotChange invalidates cached day schedules and emits the slot event.
// Neither failure aborts the request; both are logged.
func (s *scheduleService) afterSlotChange(ctx context.Context, eventType string, slotId, dentistId, clinicId uuid.UUID) {
	if err := s.cache.InvalidateDentist(ctx, dentistId); err != nil {
		s.logger.Warn("schedule", "failed to invalidate schedule cache", map[string]interface{}{
			"dentist_id": dentistId.String(),
			"error":      err.Error(),
		})
	}

	if s.eventPublisher != nil {
		event := events.NewSlotEvent(eventType, slotId, dentistId, clinicId)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("schedule", "failed to publish slot event", map[string]interface{}{
				"event": eventType,
				"error": err.Error(),
			})
		}
	}
}

// SyncFromUpstream pulls the dentist's slots from the legacy scheduling
// system, sanitizes them and upserts the survivors. Records the sanitizer
// rejects are counted as skipped, never fail the sync.
func (s *scheduleService) SyncFromUpstream(ctx context.Context, req *dto.SyncScheduleRequest) (*dto.SyncScheduleResponse, error) {
	if s.upstreamURL == "" {
		return nil, errors.New("upstream schedule source is not configured")
	}

	url := fmt.Sprintf("%s/availabilities?dentist_id=%s", s.upstreamURL, req.DentistId)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if s.upstreamAPIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.upstreamAPIKey)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	slots, err := s.resolver.NormalizePayload(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize upstream payload: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	imported := 0
	for _, slot := range slots {
		ent := s.mapper.FromNormalized(slot, req.DentistId, req.ClinicId)
		existing, err := uow.AvailabilitySlotRepository().FindOne(ctx, specification.ByID{ID: ent.Id})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ent.CreatedAt = existing.CreatedAt
			if err := uow.AvailabilitySlotRepository().Update(ctx, ent); err != nil {
				return nil, err
			}
		} else {
			if err := uow.AvailabilitySlotRepository().Create(ctx, ent); err != nil {
				return nil, err
			}
		}
		imported++
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateDentist(ctx, req.DentistId); err != nil {
		s.logger.Warn("schedule", "failed to invalidate schedule cache after sync", map[string]interface{}{
			"dentist_id": req.DentistId.String(),
			"error":      err.Error(),
		})
	}

	s.logger.Info("schedule", "upstream sync finished", map[string]interface{}{
		"dentist_id": req.DentistId.String(),
		"imported":   imported,
	})

	return &dto.SyncScheduleResponse{Imported: imported}, nil
}
