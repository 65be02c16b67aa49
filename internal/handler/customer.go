package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/metrics"
	"github.com/iliyamo/fanclub-membership/internal/model"
	"github.com/iliyamo/fanclub-membership/internal/utils"
)

// MembershipService is the part of *membership.Service used over HTTP.
type MembershipService interface {
	Register(ctx context.Context, req membership.RegisterRequest) (model.Subscription, error)
	Terminate(ctx context.Context, id model.ID) (model.ID, error)
	CancellationPreview(ctx context.Context, id model.ID) (model.Subscription, error)
	AddCustomer(ctx context.Context, rawID string, p membership.Profile) (model.Customer, error)
	EditCustomer(ctx context.Context, id model.ID, p membership.Profile) (model.Customer, error)
	Login(ctx context.Context, rawID, phone string) (model.Customer, error)
	Policy() membership.ParticipationPolicy
}

// CustomerReader loads a customer outside of a transaction.
type CustomerReader interface {
	GetByID(ctx context.Context, id model.ID) (model.Customer, error)
}

// SubscriptionReader lists a customer's subscriptions.
type SubscriptionReader interface {
	CountByCustomer(ctx context.Context, customerID model.ID) (int, error)
	DetailsByCustomer(ctx context.Context, customerID model.ID) ([]model.SubscriptionDetail, error)
}

// CourseReader lists subscription courses.
type CourseReader interface {
	ListAll(ctx context.Context) ([]model.SubscriptionCourse, error)
}

// TokenConfig controls the member tokens issued at login.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// CustomerHandler serves login and the customer pages.
type CustomerHandler struct {
	base
	Service       MembershipService
	Customers     CustomerReader
	Subscriptions SubscriptionReader
	Events        EventReader
	Artists       ArtistReader
	Courses       CourseReader
	Token         TokenConfig
}

// CustomerDeps groups the dependencies of NewCustomerHandler.
type CustomerDeps struct {
	Service       MembershipService
	Customers     CustomerReader
	Subscriptions SubscriptionReader
	Events        EventReader
	Artists       ArtistReader
	Courses       CourseReader
	Token         TokenConfig
	Log           zerolog.Logger
}

// NewCustomerHandler constructs a CustomerHandler.  All dependencies must
// be non-nil.
func NewCustomerHandler(d CustomerDeps) *CustomerHandler {
	if d.Service == nil || d.Customers == nil || d.Subscriptions == nil || d.Events == nil || d.Artists == nil || d.Courses == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		base:          base{log: d.Log},
		Service:       d.Service,
		Customers:     d.Customers,
		Subscriptions: d.Subscriptions,
		Events:        d.Events,
		Artists:       d.Artists,
		Courses:       d.Courses,
		Token:         d.Token,
	}
}

type loginRequest struct {
	ID    string `json:"id_filter" form:"id_filter" validate:"required"`
	Phone string `json:"phone_filter" form:"phone_filter" validate:"required"`
}

// Login handles POST /v1/login.  The member id and phone must match a
// stored customer.  On success a member token is returned; it identifies
// the caller but grants nothing.
func (h *CustomerHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	cust, err := h.Service.Login(ctx, req.ID, req.Phone)
	metrics.RecordCustomer("login", membership.Code(err))
	if err != nil {
		return h.fail(c, err)
	}
	tok, err := utils.NewMemberToken(h.Token.Secret, cust.ID, h.Token.TTL)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, LoginResponse{
		CustomerID: cust.ID,
		Name:       cust.Name,
		Token:      tok.Token,
		ExpiresAt:  tok.Exp.Format(time.RFC3339),
	})
}

type profileRequest struct {
	Name    string `json:"name" form:"name" validate:"max=255"`
	Email   string `json:"email" form:"email" validate:"max=255"`
	Phone   string `json:"phone" form:"phone" validate:"max=64"`
	Address string `json:"address" form:"address" validate:"max=512"`
}

func (r profileRequest) profile() membership.Profile {
	return membership.Profile{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

// addCustomerRequest repeats the profile fields rather than embedding
// profileRequest: echo's form binder does not descend into untagged
// embedded structs.
type addCustomerRequest struct {
	ID      string `json:"id" form:"id"`
	Name    string `json:"name" form:"name" validate:"max=255"`
	Email   string `json:"email" form:"email" validate:"max=255"`
	Phone   string `json:"phone" form:"phone" validate:"max=64"`
	Address string `json:"address" form:"address" validate:"max=512"`
}

func (r addCustomerRequest) profile() membership.Profile {
	return profileRequest{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}.profile()
}

// AddCustomer handles POST /v1/customers.
func (h *CustomerHandler) AddCustomer(c echo.Context) error {
	var req addCustomerRequest
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	cust, err := h.Service.AddCustomer(ctx, req.ID, req.profile())
	metrics.RecordCustomer("add", membership.Code(err))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, customerResponse(cust))
}

// EditCustomer handles PUT /v1/customers/:id.
func (h *CustomerHandler) EditCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return badRequest(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	cust, err := h.Service.EditCustomer(ctx, id, req.profile())
	metrics.RecordCustomer("edit", membership.Code(err))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, customerResponse(cust))
}

// GetCustomer handles GET /v1/customers/:id: the profile, the number of
// subscriptions and each subscription with its event participations.
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	count, err := h.Subscriptions.CountByCustomer(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	details, err := h.Subscriptions.DetailsByCustomer(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}

	subs := make([]SubscriptionDetailResponse, 0, len(details))
	for _, d := range details {
		parts, err := h.Events.ParticipationsBySubscription(ctx, d.SubscriptionID)
		if err != nil {
			return h.fail(c, err)
		}
		pr := make([]ParticipationResponse, 0, len(parts))
		for _, p := range parts {
			pr = append(pr, ParticipationResponse{
				Event:             p.EventName,
				EventType:         p.TypeName,
				ParticipationDate: membership.FormatDate(p.ParticipationDate),
			})
		}
		subs = append(subs, SubscriptionDetailResponse{
			SubscriptionID: d.SubscriptionID,
			Artist:         d.ArtistName,
			Course:         d.CourseName,
			StartDate:      membership.FormatDate(d.StartDate),
			EndDate:        membership.FormatDate(d.EndDate),
			Participations: pr,
		})
	}
	return c.JSON(http.StatusOK, CustomerDetailResponse{
		Customer:          customerResponse(cust),
		SubscriptionCount: count,
		Subscriptions:     subs,
	})
}

// JoinForm handles GET /v1/customers/:id/join: artist names and courses.
func (h *CustomerHandler) JoinForm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()

	if _, err := h.Customers.GetByID(ctx, id); err != nil {
		return h.fail(c, err)
	}
	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	courses, err := h.Courses.ListAll(ctx)
	if err != nil {
		return h.fail(c, err)
	}

	resp := JoinFormResponse{
		CustomerID: id,
		Artists:    make([]string, 0, len(artists)),
		Courses:    make([]CourseResponse, 0, len(courses)),
	}
	for _, a := range artists {
		resp.Artists = append(resp.Artists, a.Name)
	}
	for _, co := range courses {
		resp.Courses = append(resp.Courses, CourseResponse{ID: co.ID, CourseName: co.CourseName, DurationMonths: co.DurationMonths})
	}
	return c.JSON(http.StatusOK, resp)
}
