package service

import (
	"context"
	"errors"
	"time"

	"dentalcare-be/internal/dto"
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/pkg/logger"
	"dentalcare-be/internal/pkg/mailer"
	"dentalcare-be/internal/repository/specification"
	"dentalcare-be/internal/repository/unitofwork"
	"dentalcare-be/pkg/events"
	pktNats "dentalcare-be/pkg/nats"

	"github.com/google/uuid"
)

var (
	ErrSlotNotAvailable = errors.New("slot is not available on that date")
	ErrSlotTaken        = errors.New("slot is already booked")
)

type IAppointmentService interface {
	Book(ctx context.Context, patientId uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, role string, appointmentId uuid.UUID) error
	GetAppointment(ctx context.Context, userId uuid.UUID, role string, appointmentId uuid.UUID) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, patientId uuid.UUID) ([]dto.AppointmentResponse, error)
	ListForDentist(ctx context.Context, dentistId uuid.UUID, date string) ([]dto.AppointmentResponse, error)
}

type appointmentService struct {
	uowFactory      unitofwork.RepositoryFactory
	scheduleService IScheduleService
	eventPublisher  *pktNats.Publisher
	emailService    mailer.IEmailService
	logger          logger.ILogger
}

func NewAppointmentService(
	uowFactory unitofwork.RepositoryFactory,
	scheduleService IScheduleService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IAppointmentService {
	return &appointmentService{
		uowFactory:      uowFactory,
		scheduleService: scheduleService,
		eventPublisher:  eventPublisher,
		emailService:    emailService,
		logger:          log,
	}
}

func appointmentToResponse(a *entity.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		Id:          a.Id,
		PatientId:   a.PatientId,
		DentistId:   a.DentistId,
		ClinicId:    a.ClinicId,
		SlotId:      a.SlotId,
		Date:        a.Date,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Status:      string(a.Status),
		Reason:      a.Reason,
		CancelledAt: a.CancelledAt,
		CreatedAt:   a.CreatedAt,
	}
}

// Book reserves a slot for the patient. The slot must resolve as open on the
// requested date and must not already hold a booked appointment.
func (s *appointmentService) Book(ctx context.Context, patientId uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}
	if today := time.Now().Format("2006-01-02"); req.Date < today {
		return nil, errors.New("cannot book an appointment in the past")
	}

	day, err := s.scheduleService.GetDaySchedule(ctx, req.DentistId, req.Date)
	if err != nil {
		return nil, err
	}

	var chosen *dto.SlotResponse
	for i := range day.Slots {
		if day.Slots[i].Id == req.SlotId {
			chosen = &day.Slots[i]
			break
		}
	}
	if chosen == nil || chosen.IsBlocked {
		return nil, ErrSlotNotAvailable
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.AppointmentRepository().FindOne(ctx,
		specification.FilterBy{Field: "slot_id", Value: req.SlotId},
		specification.ByDate{Date: req.Date},
		specification.ByStatus{Status: string(entity.AppointmentStatusBooked)},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		Id:        uuid.New(),
		PatientId: patientId,
		DentistId: req.DentistId,
		ClinicId:  chosen.ClinicId,
		SlotId:    req.SlotId,
		Date:      req.Date,
		StartTime: chosen.StartTime,
		EndTime:   chosen.EndTime,
		Status:    entity.AppointmentStatusBooked,
		Reason:    req.Reason,
	}
	if err := uow.AppointmentRepository().Create(ctx, appointment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishAppointmentEvent(ctx, events.TypeAppointmentBooked, appointment)
	go s.sendConfirmationEmail(appointment)

	res := appointmentToResponse(appointment)
	return &res, nil
}

func (s *appointmentService) findVisible(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, role string, appointmentId uuid.UUID) (*entity.Appointment, error) {
	appointment, err := uow.AppointmentRepository().FindOne(ctx, specification.ByID{ID: appointmentId})
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, errors.New("appointment not found")
	}

	switch role {
	case string(entity.UserRolePatient):
		if appointment.PatientId != userId {
			return nil, errors.New("appointment not found")
		}
	case string(entity.UserRoleDentist), string(entity.UserRoleStaff), string(entity.UserRoleAdmin):
		// Clinic-side roles see all appointments.
	default:
		return nil, errors.New("appointment not found")
	}
	return appointment, nil
}

func (s *appointmentService) GetAppointment(ctx context.Context, userId uuid.UUID, role string, appointmentId uuid.UUID) (*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := s.findVisible(ctx, uow, userId, role, appointmentId)
	if err != nil {
		return nil, err
	}
	res := appointmentToResponse(appointment)
	return &res, nil
}

func (s *appointmentService) Cancel(ctx context.Context, userId uuid.UUID, role string, appointmentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := s.findVisible(ctx, uow, userId, role, appointmentId)
	if err != nil {
		return err
	}
	if appointment.Status != entity.AppointmentStatusBooked {
		return errors.New("only booked appointments can be cancelled")
	}

	if err := uow.AppointmentRepository().Cancel(ctx, appointment.Id); err != nil {
		return err
	}

	s.publishAppointmentEvent(ctx, events.TypeAppointmentCancelled, appointment)
	go s.sendCancellationEmail(appointment)
	return nil
}

func (s *appointmentService) ListForPatient(ctx context.Context, patientId uuid.UUID) ([]dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointments, err := uow.AppointmentRepository().FindAll(ctx,
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "date", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentResponse, len(appointments))
	for i, a := range appointments {
		out[i] = appointmentToResponse(a)
	}
	return out, nil
}

func (s *appointmentService) ListForDentist(ctx context.Context, dentistId uuid.UUID, date string) ([]dto.AppointmentResponse, error) {
	specs := []specification.Specification{
		specification.ByDentistID{DentistID: dentistId},
		specification.OrderBy{Field: "date"},
		specification.OrderBy{Field: "start_time"},
	}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, errors.New("date must be YYYY-MM-DD")
		}
		specs = append(specs, specification.ByDate{Date: date})
	} else {
		// Without an explicit date the dentist view covers the coming month.
		now := time.Now()
		specs = append(specs, specification.DateBetween{
			From: now.Format("2006-01-02"),
			To:   now.AddDate(0, 1, 0).Format("2006-01-02"),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointments, err := uow.AppointmentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentResponse, len(appointments))
	for i, a := range appointments {
		out[i] = appointmentToResponse(a)
	}
	return out, nil
}

func (s *appointmentService) publishAppointmentEvent(ctx context.Context, eventType string, a *entity.Appointment) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewAppointmentEvent(eventType, a.Id, a.PatientId, a.DentistId, a.Date)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("appointment", "failed to publish appointment event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

// Email sends run off the request path. Lookups use a short background
// context so a cancelled request does not drop the email.
func (s *appointmentService) sendConfirmationEmail(a *entity.Appointment) {
	if s.emailService == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	patient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: a.PatientId})
	if err != nil || patient == nil {
		s.logger.Warn("appointment", "could not load patient for confirmation email", map[string]interface{}{
			"appointment_id": a.Id.String(),
		})
		return
	}

	dentistName := "your dentist"
	dentist, err := uow.DentistRepository().FindOne(ctx, specification.ByID{ID: a.DentistId})
	if err == nil && dentist != nil {
		dentistName = dentist.FullName
	}

	if err := s.emailService.SendAppointmentConfirmation(patient.Email, patient.FullName, dentistName, a.Date, a.StartTime, a.EndTime); err != nil {
		s.logger.Warn("appointment", "failed to send confirmation email", map[string]interface{}{
			"appointment_id": a.Id.String(),
			"error":          err.Error(),
		})
	}
}

func (s *appointmentService) sendCancellationEmail(a *entity.Appointment) {
	if s.emailService == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	patient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: a.PatientId})
	if err != nil || patient == nil {
		s.logger.Warn("appointment", "could not load patient for cancellation email", map[string]interface{}{
			"appointment_id": a.Id.String(),
		})
		return
	}

	if err := s.emailService.SendAppointmentCancellation(patient.Email, patient.FullName, a.Date, a.StartTime); err != nil {
		s.logger.Warn("appointment", "failed to send cancellation email", map[string]interface{}{
			"appointment_id": a.Id.String(),
			"error":          err.Error(),
		})
	}
}
