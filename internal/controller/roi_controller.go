package controller

import (
	"github.com/gofiber/fiber/v2"

	"apluscharge_backend/internal/model"
	"apluscharge_backend/pkg/metrics"
	"apluscharge_backend/pkg/roi"
	"apluscharge_backend/pkg/utils/validation"
)

type ROIController struct {
	metrics *metrics.Metrics
}

func NewROIController(m *metrics.Metrics) *ROIController {
	return &ROIController{metrics: m}
}

func (rc *ROIController) CalculateROI(c *fiber.Ctx) error {
	req := new(model.ROIRequest)
	if err := c.BodyParser(req); err != nil {
		return validationFailed(c, validation.BodyError(err))
	}
	if err := validation.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	result := roi.Calculate(req.Input())
	if !result.Finite() {
		return validationFailed(c, validation.Errors{{
			Loc:  []string{"body"},
			Msg:  "inputs are too large to produce a finite result",
			Type: "value_error.number.not_finite",
		}})
	}
	rc.metrics.ObserveROI()
	return c.JSON(result)
}
