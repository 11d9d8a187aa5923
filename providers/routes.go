package providers

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes registers the HTTP API on the fiber app. The WebSocket
// upgrade itself is served by FastHTTPHandler at the app level.
func (p *Provider) RegisterRoutes(app *fiber.App) {
	app.Get("/ws/info", p.handleInfo)
	app.Get("/healthz", p.handleHealth)
	app.Get("/dashboard", p.handleDashboard)

	app.Post("/schedule_appointments/", p.handleScheduleAppointment)
	app.Post("/cancel_appointments/", p.handleCancelAppointment)
	app.Get("/list_appointments/", p.handleListAppointments)
}

func (p *Provider) handleInfo(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"websocket": true,
		"endpoint":  "/ws",
		"clients":   p.hub.Count(),
	})
}

func (p *Provider) handleHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"connections": p.hub.Count(),
	})
}

func (p *Provider) handleDashboard(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(dashboardHTML)
}
