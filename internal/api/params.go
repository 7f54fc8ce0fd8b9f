package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"training-center/internal/apperror"
	"training-center/internal/model"
)

// pageRequest reads ?page=&size=&sort=property[,asc|desc].
func pageRequest(c *fiber.Ctx) (model.PageRequest, error) {
	var req model.PageRequest

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return req, apperror.Validation(apperror.CodeInvalidPage, "Invalid page: %s", raw)
		}
		req.Page = page
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return req, apperror.Validation(apperror.CodeInvalidPage, "Invalid page size: %s", raw)
		}
		req.Size = size
	}

	if raw := c.Query("sort"); raw != "" {
		property, direction, _ := strings.Cut(raw, ",")
		req.Sort = strings.TrimSpace(property)
		switch strings.ToLower(strings.TrimSpace(direction)) {
		case "", "asc":
		case "desc":
			req.Desc = true
		default:
			return req, apperror.Validation(apperror.CodeInvalidSort, "Invalid sort direction: %s", direction)
		}
	}

	return req.Normalize(), nil
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation(apperror.CodeInvalidID, "Invalid id: %s", raw)
	}
	return id, nil
}

func pathText(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// requiredCount reads a non-negative integer query parameter.
func requiredCount(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperror.Validation(apperror.CodeInvalidCapacity, "Query parameter %s is required", name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation(apperror.CodeInvalidCapacity, "Invalid %s: %s", name, raw)
	}
	return n, nil
}

func queryDate(c *fiber.Ctx, name string) (model.Date, error) {
	raw := c.Query(name)
	d, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, apperror.Validation(apperror.CodeInvalidDate, "Invalid %s date, expected YYYY-MM-DD: %s", name, raw)
	}
	return d, nil
}

func nullBody(entity string, err error) error {
	return apperror.Validation(apperror.CodeNullRequest, "%s body is missing or malformed", entity).Wrap(err)
}

func sendPage[T any](c *fiber.Ctx, page *model.Page[T], err error) error {
	if err != nil {
		return writeError(c, err)
	}
	if !page.HasContent() {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(page)
}
