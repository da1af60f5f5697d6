package models

import "time"

// Operational states of a resource, managed by the maintenance workflow.
const (
	ResourceAvailable   = "available"
	ResourceMaintenance = "maintenance"
	ResourceUnavailable = "unavailable"
)

// Resource is a bookable facility or piece of equipment.
type Resource struct {
	ID               string    `bson:"id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Category         string    `bson:"category" json:"category"` // e.g., "room", "lab", "equipment"
	Description      string    `bson:"description,omitempty" json:"description,omitempty"`
	Location         string    `bson:"location,omitempty" json:"location,omitempty"`
	Capacity         int       `bson:"capacity,omitempty" json:"capacity,omitempty"`
	RequiresApproval bool      `bson:"requires_approval" json:"requires_approval"`
	Status           string    `bson:"status" json:"status"` // available | maintenance | unavailable
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// Bookable reports whether the resource currently accepts new bookings.
func (r *Resource) Bookable() bool {
	return r.Status == ResourceAvailable
}
