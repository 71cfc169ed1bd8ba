package http

import "github.com/labstack/echo/v4"

type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes the payload as-is. Response bodies are the domain objects
// themselves, not an envelope.
func JSON(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, data)
}

// Error writes the stable {message} error body. Messages stay generic on
// credential paths so failures are indistinguishable to a probing client.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageResponse{Message: message})
}

func Message(c echo.Context, status int, message string) error {
	return c.JSON(status, MessageResponse{Message: message})
}
