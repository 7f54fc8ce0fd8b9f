package api

import (
	"github.com/gofiber/fiber/v2"

	"training-center/internal/model"
	"training-center/internal/service"
)

type CourseHandler struct {
	courseService service.CourseService
}

func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var course model.Course
	if err := c.BodyParser(&course); err != nil {
		return writeError(c, nullBody("Course", err))
	}

	saved, err := h.courseService.Save(c.UserContext(), &course)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

func (h *CourseHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	course, err := h.courseService.FindByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(course)
}

func (h *CourseHandler) List(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.courseService.FindAll(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *CourseHandler) Search(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.courseService.Search(c.UserContext(), c.Query("keyword"), req)
	return sendPage(c, page, err)
}

func (h *CourseHandler) DateRange(c *fiber.Ctx) error {
	start, err := queryDate(c, "start")
	if err != nil {
		return writeError(c, err)
	}
	end, err := queryDate(c, "end")
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.courseService.FindByDateRange(c.UserContext(), start, end, req)
	return sendPage(c, page, err)
}

func (h *CourseHandler) Available(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.courseService.FindAvailableCourses(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *CourseHandler) Upcoming(c *fiber.Ctx) error {
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.courseService.FindUpcomingCourses(c.UserContext(), req)
	return sendPage(c, page, err)
}

func (h *CourseHandler) ByTrainer(c *fiber.Ctx) error {
	trainerID, err := pathID(c, "trainerId")
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.courseService.FindByTrainerID(c.UserContext(), trainerID, req)
	return sendPage(c, page, err)
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var course model.Course
	if err := c.BodyParser(&course); err != nil {
		return writeError(c, nullBody("Course", err))
	}
	course.ID = id

	updated, err := h.courseService.Update(c.UserContext(), &course)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(updated)
}

func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.courseService.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
