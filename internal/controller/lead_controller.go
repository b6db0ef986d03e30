package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"apluscharge_backend/internal/model"
	"apluscharge_backend/pkg/database"
	"apluscharge_backend/pkg/email"
	"apluscharge_backend/pkg/logger"
	"apluscharge_backend/pkg/metrics"
	"apluscharge_backend/pkg/utils/validation"
)

// Notifier sends one email and swallows every failure.
type Notifier interface {
	Send(ctx context.Context, to, subject, html string)
}

type LeadController struct {
	store       database.Store
	notifier    Notifier
	notifyEmail string
	log         *zap.Logger
	metrics     *metrics.Metrics
}

func NewLeadController(store database.Store, notifier Notifier, notifyEmail string, log *zap.Logger, m *metrics.Metrics) *LeadController {
	return &LeadController{
		store:       store,
		notifier:    notifier,
		notifyEmail: notifyEmail,
		log:         logger.OrNop(log),
		metrics:     m,
	}
}

func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	input := new(model.LeadInput)
	if err := c.BodyParser(input); err != nil {
		lc.metrics.ObserveLead("invalid")
		return validationFailed(c, validation.BodyError(err))
	}
	if err := validation.Struct(input); err != nil {
		lc.metrics.ObserveLead("invalid")
		return validationFailed(c, err)
	}
	input.ApplyDefaults()

	ctx := c.UserContext()
	id, err := lc.persist(ctx, input)
	if err != nil {
		lc.log.Error("could not create lead", zap.Error(err))
		lc.metrics.ObserveLead("error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	lc.sendConfirmation(ctx, input)
	lc.sendInternalNotification(ctx, input)

	lc.log.Info("lead created", zap.String("id", id), zap.String("source", model.Value(input.Source)))
	lc.metrics.ObserveLead("success")
	return c.JSON(fiber.Map{
		"status": "success",
		"id":     id,
	})
}

func (lc *LeadController) persist(ctx context.Context, input *model.LeadInput) (string, error) {
	if lc.store == nil {
		return "", database.ErrStoreUnavailable
	}
	return lc.store.CreateDocument(ctx, model.LeadCollection, input.Document())
}

func (lc *LeadController) sendConfirmation(ctx context.Context, input *model.LeadInput) {
	if lc.notifier == nil {
		return
	}

	html, err := email.RenderLeadConfirmation(email.LeadConfirmationData{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   model.Value(input.Phone),
		Company: model.Value(input.Company),
		City:    model.Value(input.City),
		State:   model.Value(input.State),
	})
	if err != nil {
		lc.log.Error("could not render confirmation email", zap.Error(err))
		return
	}

	lc.notifier.Send(ctx, input.Email, email.LeadConfirmationSubject, html)
}

func (lc *LeadController) sendInternalNotification(ctx context.Context, input *model.LeadInput) {
	if lc.notifier == nil || lc.notifyEmail == "" {
		return
	}

	doc := input.Document()
	fields := make([]email.Field, 0, len(model.LeadFields))
	for _, key := range model.LeadFields {
		value := ""
		if v := doc[key]; v != nil {
			value = fmt.Sprint(v)
		}
		fields = append(fields, email.Field{Key: key, Value: value})
	}

	html, err := email.RenderLeadNotification(email.LeadNotificationData{Fields: fields})
	if err != nil {
		lc.log.Error("could not render lead notification", zap.Error(err))
		return
	}

	lc.notifier.Send(ctx, lc.notifyEmail, email.LeadNotificationSubject(input.Name), html)
}

func validationFailed(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": verrs,
		})
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": err.Error(),
	})
}
