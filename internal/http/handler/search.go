package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docanalytics/internal/service"
)

type searchRequest struct {
	Keywords string `json:"keywords"`
}

// SearchDocuments runs a keyword search over all documents and logs it.
//
// @Summary  Search documents
// @Tags     search
// @Accept   json
// @Produce  json
// @Param    body body searchRequest true "keywords to search for"
// @Success  200 {object} service.SearchResult
// @Failure  400 {object} errorPayload
// @Router   /api/search [post]
func SearchDocuments(searchSvc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := searchSvc.Search(c.UserContext(), req.Keywords)
		if err != nil {
			if errors.Is(err, service.ErrKeywordsRequired) {
				return writeError(c, fiber.StatusBadRequest, "KEYWORDS_REQUIRED", "keywords are required")
			}
			return internalError(c)
		}
		return c.JSON(res)
	}
}

// GetStatistics summarizes documents and searches.
//
// @Summary  Collection statistics
// @Tags     statistics
// @Produce  json
// @Success  200 {object} service.Statistics
// @Router   /api/statistics [get]
func GetStatistics(statsSvc service.StatisticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := statsSvc.Get(c.UserContext())
		if err != nil {
			return internalError(c)
		}
		return c.JSON(stats)
	}
}
