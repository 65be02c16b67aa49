package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fanclub-membership/internal/model"
	"github.com/iliyamo/fanclub-membership/internal/repository"
)

// ArtistReader is the read side of the Artist table.
type ArtistReader interface {
	ListAll(ctx context.Context) ([]model.Artist, error)
	GetByID(ctx context.Context, id model.ID) (model.Artist, error)
}

// EventReader is the read side of events and participations.
type EventReader interface {
	ListByArtist(ctx context.Context, artistID model.ID, typeName string) ([]repository.EventRow, error)
	ListTypes(ctx context.Context) ([]model.EventType, error)
	ParticipationsBySubscription(ctx context.Context, subscriptionID model.ID) ([]model.ParticipationDetail, error)
}

// BrowseHandler serves the public artist and event listings.
type BrowseHandler struct {
	base
	Artists ArtistReader
	Events  EventReader
}

// NewBrowseHandler constructs a BrowseHandler and panics if a dependency is nil.
func NewBrowseHandler(artists ArtistReader, events EventReader, log zerolog.Logger) *BrowseHandler {
	if artists == nil || events == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{base: base{log: log}, Artists: artists, Events: events}
}

// ListArtists handles GET /v1/artists.
func (h *BrowseHandler) ListArtists(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]ArtistResponse, 0, len(artists))
	for _, a := range artists {
		out = append(out, artistResponse(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetArtist handles GET /v1/artists/:id.
func (h *BrowseHandler) GetArtist(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, artistResponse(a))
}

// ListArtistEvents handles GET /v1/artists/:id/events.  The optional
// event_type query parameter filters by type name.
func (h *BrowseHandler) ListArtistEvents(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	artist, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	eventType := c.QueryParam("event_type")
	events, err := h.Events.ListByArtist(ctx, id, eventType)
	if err != nil {
		return h.fail(c, err)
	}
	if events == nil {
		events = []repository.EventRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"artist":     artistResponse(artist),
		"event_type": eventType,
		"items":      events,
	})
}

// ListEventTypes handles GET /v1/event-types.
func (h *BrowseHandler) ListEventTypes(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	types, err := h.Events.ListTypes(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]echo.Map, 0, len(types))
	for _, t := range types {
		out = append(out, echo.Map{"id": t.ID, "type_name": t.TypeName})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
