package api

import (
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Trainers   *TrainerHandler
	Students   *StudentHandler
	Courses    *CourseHandler
	ClassRooms *ClassRoomHandler
}

type ServerOptions struct {
	ServiceName         string
	JWTSecret           string
	CorsAllowOrigins    string
	RateLimitMax        int
	RateLimitExpiration time.Duration
	AccessLog           bool
}

// NewApp builds the fiber.App with the ambient middleware, the health and
// metrics endpoints, and every /api route.
func NewApp(opts ServerOptions, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.ServiceName,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(PrometheusMiddleware())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CorsAllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	if opts.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitMax,
			Expiration: opts.RateLimitExpiration,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many request, please try again later.",
				})
			},
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app.Group("/api"), h, AuthMiddleware(opts.JWTSecret))

	return app
}

// RegisterRoutes mounts the entity routes. Fixed paths are registered before
// /:id so they are not captured by it. guard wraps every write.
func RegisterRoutes(router fiber.Router, h Handlers, guard fiber.Handler) {
	trainers := router.Group("/trainers")
	trainers.Get("/", h.Trainers.List)
	trainers.Get("/search", h.Trainers.Search)
	trainers.Get("/email/:email", h.Trainers.ByEmail)
	trainers.Get("/specialty/:specialty", h.Trainers.BySpecialty)
	trainers.Get("/name", h.Trainers.ByName)
	trainers.Get("/classroom/:classRoomId", h.Trainers.ByClassRoom)
	trainers.Get("/available", h.Trainers.Available)
	trainers.Get("/:id", h.Trainers.Get)
	trainers.Post("/", guard, h.Trainers.Create)
	trainers.Put("/:id", guard, h.Trainers.Update)
	trainers.Delete("/:id", guard, h.Trainers.Delete)

	students := router.Group("/students")
	students.Get("/", h.Students.List)
	students.Get("/search", h.Students.Search)
	students.Get("/level/:level", h.Students.ByLevel)
	students.Get("/classroom/:classRoomId", h.Students.ByClassRoom)
	students.Get("/course/:courseId", h.Students.ByCourse)
	students.Get("/:id", h.Students.Get)
	students.Post("/", guard, h.Students.Create)
	students.Put("/:id", guard, h.Students.Update)
	students.Delete("/:id", guard, h.Students.Delete)

	courses := router.Group("/courses")
	courses.Get("/", h.Courses.List)
	courses.Get("/search", h.Courses.Search)
	courses.Get("/date-range", h.Courses.DateRange)
	courses.Get("/available", h.Courses.Available)
	courses.Get("/upcoming", h.Courses.Upcoming)
	courses.Get("/trainer/:trainerId", h.Courses.ByTrainer)
	courses.Get("/:id", h.Courses.Get)
	courses.Post("/", guard, h.Courses.Create)
	courses.Put("/:id", guard, h.Courses.Update)
	courses.Delete("/:id", guard, h.Courses.Delete)

	classRooms := router.Group("/classrooms")
	classRooms.Get("/", h.ClassRooms.List)
	classRooms.Get("/search", h.ClassRooms.Search)
	classRooms.Get("/available", h.ClassRooms.Available)
	classRooms.Get("/empty", h.ClassRooms.Empty)
	classRooms.Get("/without-trainers", h.ClassRooms.WithoutTrainers)
	classRooms.Get("/:id", h.ClassRooms.Get)
	classRooms.Post("/", guard, h.ClassRooms.Create)
	classRooms.Put("/:id", guard, h.ClassRooms.Update)
	classRooms.Delete("/:id", guard, h.ClassRooms.Delete)
}
