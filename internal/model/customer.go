package model

// Customer represents a fan-club member.  Profile fields are the only
// data in the schema that is ever updated in place.
//
// Fields:
//  ID      – member number, chosen at sign-up.
//  Name    – member name (no control characters).
//  Email   – contact email (no control characters).
//  Phone   – phone number; doubles as the login secret.
//  Address – postal address (no control characters).
type Customer struct {
	ID      ID     // Customer.id
	Name    string // Customer.name
	Email   string // Customer.email
	Phone   string // Customer.phone
	Address string // Customer.address
}
