package api

import (
	"github.com/gofiber/fiber/v2"

	"training-center/internal/model"
	"training-center/internal/service"
)

type ClassRoomHandler struct {
	classRoomService service.ClassRoomService
}

func NewClassRoomHandler(classRoomService service.ClassRoomService) *ClassRoomHandler {
	return &ClassRoomHandler{classRoomService: classRoomService}
}

func (h *ClassRoomHandler) Create(c *fiber.Ctx) error {
	var room model.ClassRoom
	if err := c.BodyParser(&room); err != nil {
		return writeError(c, nullBody("ClassRoom", err))
	}

	saved, err := h.classRoomService.Save(c.UserContext(), &room)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *ClassRoomHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	room, err := h.classRoomService.FindByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(room)
}

func (h *ClassRoomHandler) List(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.classRoomService.FindAll(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *ClassRoomHandler) Search(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.classRoomService.Search(c.UserContext(), c.Query("keyword"), req)
	return sendPage(c, page, err)
}

func (h *ClassRoomHandler) Available(c *fiber.Ctx) error {
	capacity, err := requiredCount(c, "capacity")
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.classRoomService.FindAvailableRooms(c.UserContext(), capacity, req)
	return sendPage(c, page, err)
}

func (h *ClassRoomHandler) Empty(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.classRoomService.FindEmptyRooms(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *ClassRoomHandler) WithoutTrainers(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.classRoomService.FindRoomsWithoutTrainers(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *ClassRoomHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var room model.ClassRoom
	if err := c.BodyParser(&room); err != nil {
		return writeError(c, nullBody("ClassRoom", err))
	}
	room.ID = id

	updated, err := h.classRoomService.Update(c.UserContext(), &room)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(updated)
}

func (h *ClassRoomHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.classRoomService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
