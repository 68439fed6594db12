package controller

import (
	"dentalcare-be/internal/dto"
	"dentalcare-be/internal/pkg/serverutils"
	"dentalcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IScheduleController interface {
	RegisterRoutes(r fiber.Router)
	GetDaySchedule(ctx *fiber.Ctx) error
	ListSlots(ctx *fiber.Ctx) error
	CreateSlot(ctx *fiber.Ctx) error
	BlockSlot(ctx *fiber.Ctx) error
	UnblockSlot(ctx *fiber.Ctx) error
	DeleteSlot(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
}

type scheduleController struct {
	scheduleService service.IScheduleService
}

func NewScheduleController(scheduleService service.IScheduleService) IScheduleController {
	return &scheduleController{
		scheduleService: scheduleService,
	}
}

func (c *scheduleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/schedule/v1")
	h.Use(serverutils.JwtMiddleware)

	// Patients browse the resolved day view when booking.
	h.Get("dentists/:dentistId/day", c.GetDaySchedule)

	// Slot management is clinic-side only.
	manage := h.Group("", serverutils.RequireRole("dentist", "staff", "admin"))
	manage.Get("dentists/:dentistId/slots", c.ListSlots)
	manage.Post("slots", c.CreateSlot)
	manage.Patch("slots/:id/block", c.BlockSlot)
	manage.Patch("slots/:id/unblock", c.UnblockSlot)
	manage.Delete("slots/:id", c.DeleteSlot)
	manage.Post("sync", c.Sync)
}

func (c *scheduleController) GetDaySchedule(ctx *fiber.Ctx) error {
	dentistId, err := uuid.Parse(ctx.Params("dentistId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid dentist ID")
	}
	date := ctx.Query("date")
	if date == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Query parameter 'date' is required")
	}

	res, err := c.scheduleService.GetDaySchedule(ctx.Context(), dentistId, date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get day schedule", res))
}

func (c *scheduleController) ListSlots(ctx *fiber.Ctx) error {
	dentistId, err := uuid.Parse(ctx.Params("dentistId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid dentist ID")
	}

	res, err := c.scheduleService.ListSlots(ctx.Context(), dentistId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list slots", res))
}

func (c *scheduleController) CreateSlot(ctx *fiber.Ctx) error {
	var req dto.CreateSlotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scheduleService.CreateAvailabilitySlot(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create slot", res))
}

func (c *scheduleController) BlockSlot(ctx *fiber.Ctx) error {
	slotId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid slot ID")
	}

	var req dto.BlockSlotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.scheduleService.BlockSlot(ctx.Context(), slotId, req.Reason); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success block slot", nil))
}

func (c *scheduleController) UnblockSlot(ctx *fiber.Ctx) error {
	slotId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid slot ID")
	}

	if err := c.scheduleService.UnblockSlot(ctx.Context(), slotId); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success unblock slot", nil))
}

func (c *scheduleController) DeleteSlot(ctx *fiber.Ctx) error {
	slotId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid slot ID")
	}

	if err := c.scheduleService.DeleteSlot(ctx.Context(), slotId); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete slot", nil))
}

func (c *scheduleController) Sync(ctx *fiber.Ctx) error {
	var req dto.SyncScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scheduleService.SyncFromUpstream(ctx.Context(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success sync schedule", res))
}
