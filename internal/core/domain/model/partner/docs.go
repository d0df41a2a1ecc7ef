// Package partner contains the DeliveryPartner aggregate: a courier who can
// be reserved for exactly one active order at a time and carries an optional
// travel-time estimate used to revise order dispatch times.
package partner
