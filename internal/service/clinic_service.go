package service

import (
	"context"
	"errors"

	"dentalcare-be/internal/dto"
	"dentalcare-be/internal/entity"
	"dentalcare-be/internal/repository/specification"
	"dentalcare-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IClinicService interface {
	CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error)
	ListClinics(ctx context.Context) ([]dto.ClinicResponse, error)
	AddDentist(ctx context.Context, req *dto.CreateDentistRequest) (*dto.DentistResponse, error)
	ListDentists(ctx context.Context, clinicId uuid.UUID) ([]dto.DentistResponse, error)
}

type clinicService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewClinicService(uowFactory unitofwork.RepositoryFactory) IClinicService {
	return &clinicService{uowFactory: uowFactory}
}

func clinicToResponse(c *entity.Clinic) dto.ClinicResponse {
	return dto.ClinicResponse{
		Id:        c.Id,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func dentistToResponse(d *entity.Dentist) dto.DentistResponse {
	return dto.DentistResponse{
		Id:        d.Id,
		ClinicId:  d.ClinicId,
		FullName:  d.FullName,
		Specialty: d.Specialty,
		Bio:       d.Bio,
		IsActive:  d.IsActive,
	}
}

func (s *clinicService) CreateClinic(ctx context.Context, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error) {
	clinic := &entity.Clinic{
		Id:      uuid.New(),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ClinicRepository().Create(ctx, clinic); err != nil {
		return nil, err
	}

	res := clinicToResponse(clinic)
	return &res, nil
}

func (s *clinicService) ListClinics(ctx context.Context) ([]dto.ClinicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	clinics, err := uow.ClinicRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClinicResponse, len(clinics))
	for i, c := range clinics {
		out[i] = clinicToResponse(c)
	}
	return out, nil
}

// AddDentist links a dentist profile to an existing user account and clinic.
func (s *clinicService) AddDentist(ctx context.Context, req *dto.CreateDentistRequest) (*dto.DentistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	clinic, err := uow.ClinicRepository().FindOne(ctx, specification.ByID{ID: req.ClinicId})
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, errors.New("clinic not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	if user.Role != entity.UserRoleDentist {
		return nil, errors.New("user does not have the dentist role")
	}

	dentist := &entity.Dentist{
		Id:        uuid.New(),
		UserId:    req.UserId,
		ClinicId:  req.ClinicId,
		FullName:  req.FullName,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		IsActive:  true,
	}
	if err := uow.DentistRepository().Create(ctx, dentist); err != nil {
		return nil, err
	}

	res := dentistToResponse(dentist)
	return &res, nil
}

func (s *clinicService) ListDentists(ctx context.Context, clinicId uuid.UUID) ([]dto.DentistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	dentists, err := uow.DentistRepository().FindAll(ctx,
		specification.ByClinicID{ClinicID: clinicId},
		specification.OrderBy{Field: "full_name"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DentistResponse, len(dentists))
	for i, d := range dentists {
		out[i] = dentistToResponse(d)
	}
	return out, nil
}
