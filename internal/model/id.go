package model

import "strconv"

// ID is a client-supplied positive integer identifier.  Artist, Customer
// and Subscription rows all use IDs chosen by the caller rather than
// auto-increment values, so an ID is always validated at the edge before
// it reaches the repositories.
type ID uint64

// String renders the ID in base 10.
func (id ID) String() string { return strconv.FormatUint(uint64(id), 10) }
