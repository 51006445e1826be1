package models

import "github.com/google/uuid"

// Restaurant is the snapshot of restaurant data known at order time.
// Order items are validated against its catalog, never against live
// restaurant state.
type Restaurant struct {
	ID       uuid.UUID
	Active   bool
	Products map[uuid.UUID]Product
}

type Product struct {
	ID    uuid.UUID
	Name  string
	Price Money
}

type Customer struct {
	ID uuid.UUID
}
