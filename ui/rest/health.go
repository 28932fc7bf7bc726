package rest

import (
	"github.com/gofiber/fiber/v2"
	domainHealth "github.com/pokemcp/pokemcp/domains/health"
	"github.com/pokemcp/pokemcp/pkg/utils"
)

type Health struct {
	Service domainHealth.IHealthUsecase
}

// InitRestHealth mounts the health endpoint. It is meant to be registered on
// the root router, outside basic auth, so probes can reach it.
func InitRestHealth(app fiber.Router, service domainHealth.IHealthUsecase) Health {
	handler := Health{Service: service}
	app.Get("/health", handler.GetHealth)

	return handler
}

func (h *Health) GetHealth(c *fiber.Ctx) error {
	report := h.Service.Check(c.UserContext())

	status := 200
	if report.Status == domainHealth.StatusError {
		status = 503
	}

	return c.Status(status).JSON(utils.ResponseData{
		Status:  status,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: report,
	})
}
