package controller

import (
	"dentalcare-be/internal/dto"
	"dentalcare-be/internal/pkg/serverutils"
	"dentalcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAppointmentController interface {
	RegisterRoutes(r fiber.Router)
	Book(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	ListForDentist(ctx *fiber.Ctx) error
}

type appointmentController struct {
	appointmentService service.IAppointmentService
}

func NewAppointmentController(appointmentService service.IAppointmentService) IAppointmentController {
	return &appointmentController{
		appointmentService: appointmentService,
	}
}

func (c *appointmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/appointment/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Book)
	h.Get("mine", c.ListMine)
	h.Get("dentists/:dentistId", serverutils.RequireRole("dentist", "staff", "admin"), c.ListForDentist)
	h.Get(":id", c.Show)
	h.Patch(":id/cancel", c.Cancel)
}

func identity(ctx *fiber.Ctx) (uuid.UUID, string, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	role, _ := ctx.Locals("role").(string)
	return userId, role, nil
}

func (c *appointmentController) Book(ctx *fiber.Ctx) error {
	userId, _, err := identity(ctx)
	if err != nil {
		return err
	}

	var req dto.BookAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.appointmentService.Book(ctx.Context(), userId, &req)
	if err != nil {
		switch err {
		case service.ErrSlotTaken:
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case service.ErrSlotNotAvailable:
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		default:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Appointment booked", res))
}

func (c *appointmentController) Cancel(ctx *fiber.Ctx) error {
	userId, role, err := identity(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid appointment ID")
	}

	if err := c.appointmentService.Cancel(ctx.Context(), userId, role, id); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Appointment cancelled", nil))
}

func (c *appointmentController) Show(ctx *fiber.Ctx) error {
	userId, role, err := identity(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid appointment ID")
	}

	res, err := c.appointmentService.GetAppointment(ctx.Context(), userId, role, id)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointment retrieved", res))
}

func (c *appointmentController) ListMine(ctx *fiber.Ctx) error {
	userId, _, err := identity(ctx)
	if err != nil {
		return err
	}

	res, err := c.appointmentService.ListForPatient(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointments retrieved", res))
}

func (c *appointmentController) ListForDentist(ctx *fiber.Ctx) error {
	dentistId, err := uuid.Parse(ctx.Params("dentistId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid dentist ID")
	}

	res, err := c.appointmentService.ListForDentist(ctx.Context(), dentistId, ctx.Query("date"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Appointments retrieved", res))
}
