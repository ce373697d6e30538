package model

// Location is a partner storefront that stores customer luggage.  Its
// capacity per size class is static configuration managed elsewhere; this
// service only reads it when presenting the capacity snapshot.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the storefront.
//  Address     – street address shown to customers.
//  MaxCapacity – configured number of bag slots per size class.
type Location struct {
    ID          uint64    `json:"id"`           // locations.id
    Name        string    `json:"name"`         // locations.name
    Address     string    `json:"address"`      // locations.address
    MaxCapacity BagCounts `json:"max_capacity"` // locations.max_small/max_medium/max_large
}
