package model

import "time"

// Subscription links a customer to an artist's fan club under a course.
// StartDate and EndDate are calendar dates at UTC midnight and describe
// the half-open interval [StartDate, EndDate).
//
// Fields:
//  ID         – primary key identifier (client supplied).
//  CustomerID – member holding the subscription.
//  GroupID    – artist whose fan club was joined.
//  CourseID   – course the subscription was bought under.
//  StartDate  – first active day.
//  EndDate    – first day after the subscription.
type Subscription struct {
	ID         ID        // Subscription.id
	CustomerID ID        // Subscription.customer_id
	GroupID    ID        // Subscription.group_id
	CourseID   ID        // Subscription.course_id
	StartDate  time.Time // Subscription.start_date
	EndDate    time.Time // Subscription.end_date
}

// SubscriptionDetail is a subscription joined with the artist and
// course names, as shown on a customer's page.
type SubscriptionDetail struct {
	SubscriptionID ID
	ArtistName     string
	CourseName     string
	StartDate      time.Time
	EndDate        time.Time
}
