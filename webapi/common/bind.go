package common

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate parses the JSON body into T and validates it. On failure
// the problem response is already written and the returned *T is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	return validated(c, &input)
}

// ParseParams binds the route parameters into T and validates them.
func ParseParams[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.ParamsParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid path parameters", err.Error())
	}
	return validated(c, &input)
}

// ParseQuery binds the query string into T and validates it.
func ParseQuery[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.QueryParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid query parameters", err.Error())
	}
	return validated(c, &input)
}

func validated[T any](c *fiber.Ctx, input *T) (*T, error) {
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return input, nil
}
