package handler

import (
	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/model"
)

// ArtistResponse is an artist in API responses.
type ArtistResponse struct {
	ID        model.ID `json:"id"`
	Name      string   `json:"name"`
	DebutYear int      `json:"debut_year"`
}

func artistResponse(a model.Artist) ArtistResponse {
	return ArtistResponse{ID: a.ID, Name: a.Name, DebutYear: a.DebutYear}
}

// CustomerResponse is a customer profile.
type CustomerResponse struct {
	ID      model.ID `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
}

func customerResponse(c model.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

// SubscriptionResponse is a stored subscription row.
type SubscriptionResponse struct {
	ID         model.ID `json:"id"`
	CustomerID model.ID `json:"customer_id"`
	ArtistID   model.ID `json:"artist_id"`
	CourseID   model.ID `json:"course_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}

func subscriptionResponse(s model.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		ArtistID:   s.GroupID,
		CourseID:   s.CourseID,
		StartDate:  membership.FormatDate(s.StartDate),
		EndDate:    membership.FormatDate(s.EndDate),
	}
}

// ParticipationResponse is one attended event.
type ParticipationResponse struct {
	Event             string `json:"event"`
	EventType         string `json:"event_type"`
	ParticipationDate string `json:"participation_date"`
}

// SubscriptionDetailResponse is a subscription with names resolved and its
// participations attached.
type SubscriptionDetailResponse struct {
	SubscriptionID model.ID                `json:"subscription_id"`
	Artist         string                  `json:"artist"`
	Course         string                  `json:"course"`
	StartDate      string                  `json:"start_date"`
	EndDate        string                  `json:"end_date"`
	Participations []ParticipationResponse `json:"participations"`
}

// CustomerDetailResponse is the customer page.
type CustomerDetailResponse struct {
	Customer          CustomerResponse             `json:"customer"`
	SubscriptionCount int                          `json:"subscription_count"`
	Subscriptions     []SubscriptionDetailResponse `json:"subscriptions"`
}

// CourseResponse is a subscription course offered in the join form.
type CourseResponse struct {
	ID             model.ID `json:"id"`
	CourseName     string   `json:"course_name"`
	DurationMonths int      `json:"duration_months"`
}

// JoinFormResponse lists what a customer can choose when joining.
type JoinFormResponse struct {
	CustomerID model.ID         `json:"customer_id"`
	Artists    []string         `json:"artists"`
	Courses    []CourseResponse `json:"courses"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	CustomerID model.ID `json:"customer_id"`
	Name       string   `json:"name"`
	Token      string   `json:"token"`
	ExpiresAt  string   `json:"expires_at"`
}

// CancelResponse is returned after a subscription is deleted.
type CancelResponse struct {
	SubscriptionID model.ID `json:"subscription_id"`
	CustomerID     model.ID `json:"customer_id"`
	Policy         string   `json:"participation_policy"`
}
