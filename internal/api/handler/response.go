package handler

import "github.com/labstack/echo/v4"

// envelope is the canonical success wrapper for every API response.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{StatusCode: status, Message: "Success", Data: data})
}
