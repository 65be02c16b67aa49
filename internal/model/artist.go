package model

// Artist represents a performer or group that runs a fan club.
// This struct corresponds to a row in the `Artist` table.
//
// Fields:
//  ID        – primary key identifier (client supplied).
//  Name      – display name, used by the join flow for lookups.
//  DebutYear – year the artist debuted.
type Artist struct {
	ID        ID     // Artist.id
	Name      string // Artist.name
	DebutYear int    // Artist.debut_year
}
