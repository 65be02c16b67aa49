package model

// SubscriptionCourse is a named plan that defines how long a fan-club
// subscription lasts.  CourseName is unique and is what customers pick
// when joining.
//
// Fields:
//  ID             – primary key identifier.
//  CourseName     – unique plan name.
//  DurationMonths – plan length in months (positive).
type SubscriptionCourse struct {
	ID             ID     // SubscriptionCourse.id
	CourseName     string // SubscriptionCourse.course_name
	DurationMonths int    // SubscriptionCourse.duration_months
}
