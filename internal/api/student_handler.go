package api

import (
	"github.com/gofiber/fiber/v2"

	"training-center/internal/model"
	"training-center/internal/service"
)

type StudentHandler struct {
	studentService service.StudentService
}

func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var student model.Student
	if err := c.BodyParser(&student); err != nil {
		return writeError(c, nullBody("Student", err))
	}

	saved, err := h.studentService.Save(c.UserContext(), &student)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *StudentHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	student, err := h.studentService.FindByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(student)
}

func (h *StudentHandler) List(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.studentService.FindAll(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *StudentHandler) Search(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.studentService.Search(c.UserContext(), c.Query("keyword"), req)
	return sendPage(c, page, err)
}

func (h *StudentHandler) ByLevel(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.studentService.FindByLevel(c.UserContext(), pathText(c, "level"), req)
	return sendPage(c, page, err)
}

func (h *StudentHandler) ByClassRoom(c *fiber.Ctx) error {
	classRoomID, err := pathID(c, "classRoomId")
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.studentService.FindByClassRoomID(c.UserContext(), classRoomID, req)
	return sendPage(c, page, err)
}

func (h *StudentHandler) ByCourse(c *fiber.Ctx) error {
	courseID, err := pathID(c, "courseId")
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.studentService.FindByCourseID(c.UserContext(), courseID, req)
	return sendPage(c, page, err)
}

func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var student model.Student
	if err := c.BodyParser(&student); err != nil {
		return writeError(c, nullBody("Student", err))
	}
	student.ID = id

	updated, err := h.studentService.Update(c.UserContext(), &student)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(updated)
}

func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.studentService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
