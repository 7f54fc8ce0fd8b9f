package api

import (
	"github.com/gofiber/fiber/v2"

	"training-center/internal/model"
	"training-center/internal/service"
)

type TrainerHandler struct {
	trainerService service.TrainerService
}

func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

func (h *TrainerHandler) Create(c *fiber.Ctx) error {
	var trainer model.Trainer
	if err := c.BodyParser(&trainer); err != nil {
		return writeError(c, nullBody("Trainer", err))
	}

	saved, err := h.trainerService.Save(c.UserContext(), &trainer)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *TrainerHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	trainer, err := h.trainerService.FindByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(trainer)
}

func (h *TrainerHandler) List(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.trainerService.FindAll(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *TrainerHandler) Search(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.trainerService.Search(c.UserContext(), c.Query("keyword"), req)
	return sendPage(c, page, err)
}

func (h *TrainerHandler) ByEmail(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.trainerService.FindByEmail(c.UserContext(), pathText(c, "email"), req)
	return sendPage(c, page, err)
}

func (h *TrainerHandler) BySpecialty(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.trainerService.FindBySpecialty(c.UserContext(), pathText(c, "specialty"), req)
	return sendPage(c, page, err)
}

func (h *TrainerHandler) ByName(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.trainerService.FindByLastNameAndFirstName(c.UserContext(), c.Query("lastName"), c.Query("firstName"), req)
	return sendPage(c, page, err)
}

func (h *TrainerHandler) ByClassRoom(c *fiber.Ctx) error {
	classRoomID, err := pathID(c, "classRoomId")
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.trainerService.FindByClassRoomID(c.UserContext(), classRoomID, req)
	return sendPage(c, page, err)
}

func (h *TrainerHandler) Available(c *fiber.Ctx) error {
	maxCourses, err := requiredCount(c, "maxCourses")
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.trainerService.FindAvailableTrainers(c.UserContext(), maxCourses, req)
	return sendPage(c, page, err)
}

func (h *TrainerHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var trainer model.Trainer
	if err := c.BodyParser(&trainer); err != nil {
		return writeError(c, nullBody("Trainer", err))
	}
	trainer.ID = id

	updated, err := h.trainerService.Update(c.UserContext(), &trainer)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(updated)
}

func (h *TrainerHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.trainerService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
