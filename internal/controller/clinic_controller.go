package controller

import (
	"dentalcare-be/internal/dto"
	"dentalcare-be/internal/pkg/serverutils"
	"dentalcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IClinicController interface {
	RegisterRoutes(r fiber.Router)
	CreateClinic(ctx *fiber.Ctx) error
	ListClinics(ctx *fiber.Ctx) error
	AddDentist(ctx *fiber.Ctx) error
	ListDentists(ctx *fiber.Ctx) error
}

type clinicController struct {
	clinicService service.IClinicService
}

func NewClinicController(clinicService service.IClinicService) IClinicController {
	return &clinicController{
		clinicService: clinicService,
	}
}

func (c *clinicController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/clinic/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.ListClinics)
	h.Get(":id/dentists", c.ListDentists)
	h.Post("", serverutils.RequireRole("admin"), c.CreateClinic)
	h.Post("dentists", serverutils.RequireRole("admin", "staff"), c.AddDentist)
}

func (c *clinicController) CreateClinic(ctx *fiber.Ctx) error {
	var req dto.CreateClinicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.clinicService.CreateClinic(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create clinic", res))
}

func (c *clinicController) ListClinics(ctx *fiber.Ctx) error {
	res, err := c.clinicService.ListClinics(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list clinics", res))
}

func (c *clinicController) AddDentist(ctx *fiber.Ctx) error {
	var req dto.CreateDentistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.clinicService.AddDentist(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add dentist", res))
}

func (c *clinicController) ListDentists(ctx *fiber.Ctx) error {
	clinicId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid clinic ID")
	}

	res, err := c.clinicService.ListDentists(ctx.Context(), clinicId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list dentists", res))
}
