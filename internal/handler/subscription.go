package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/metrics"
)

// SubscriptionHandler serves joining and cancelling fan-club subscriptions.
type SubscriptionHandler struct {
	base
	Service MembershipService
}

// NewSubscriptionHandler constructs a SubscriptionHandler.
func NewSubscriptionHandler(svc MembershipService, log zerolog.Logger) *SubscriptionHandler {
	if svc == nil {
		panic("nil service passed to NewSubscriptionHandler")
	}
	return &SubscriptionHandler{base: base{log: log}, Service: svc}
}

type joinRequest struct {
	ID        string `json:"id" form:"id"`
	Artist    string `json:"artist" form:"artist" validate:"max=255"`
	Course    string `json:"course" form:"course" validate:"max=255"`
	StartDate string `json:"start_date" form:"start_date"`
}

// Join handles POST /v1/customers/:id/subscriptions.  The subscription id is
// chosen by the client; the end date is derived from the course.
func (h *SubscriptionHandler) Join(c echo.Context) error {
	customerID, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var req joinRequest
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	sub, err := h.Service.Register(ctx, membership.RegisterRequest{
		SubscriptionID: req.ID,
		CustomerID:     customerID,
		ArtistName:     req.Artist,
		CourseName:     req.Course,
		StartDate:      req.StartDate,
	})
	metrics.RecordMembership("join", membership.Code(err))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, subscriptionResponse(sub))
}

// Preview handles GET /v1/subscriptions/:id, the confirmation step before
// a cancel.
func (h *SubscriptionHandler) Preview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	sub, err := h.Service.CancellationPreview(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, subscriptionResponse(sub))
}

// Cancel handles DELETE /v1/subscriptions/:id.
func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	customerID, err := h.Service.Terminate(ctx, id)
	metrics.RecordMembership("cancel", membership.Code(err))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, CancelResponse{
		SubscriptionID: id,
		CustomerID:     customerID,
		Policy:         string(h.Service.Policy()),
	})
}
