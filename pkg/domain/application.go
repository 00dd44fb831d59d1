package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationType identifies the service being applied for.
type ApplicationType string

const (
	ApplicationIdentificationLetter ApplicationType = "identification_letter"
	ApplicationBirthCertificate     ApplicationType = "birth_certificate"
	ApplicationBusinessRegistration ApplicationType = "business_registration"
	ApplicationVehicleRegistration  ApplicationType = "vehicle_registration"
	ApplicationHealthAppointment    ApplicationType = "health_appointment"
)

// referencePrefixes maps each application type to its reference-number prefix.
var referencePrefixes = map[ApplicationType]string{
	ApplicationIdentificationLetter: "IDL",
	ApplicationBirthCertificate:     "BCR",
	ApplicationBusinessRegistration: "BRG",
	ApplicationVehicleRegistration:  "VRG",
	ApplicationHealthAppointment:    "HAP",
}

// Valid reports whether t is a known application type.
func (t ApplicationType) Valid() bool {
	_, ok := referencePrefixes[t]
	return ok
}

// ReferencePrefix returns the reference-number prefix for the type.
func (t ApplicationType) ReferencePrefix() string {
	return referencePrefixes[t]
}

// ApplicationStatus tracks an application through review.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

// Application represents a citizen's service application.
type Application struct {
	ID              uuid.UUID         `json:"id"`
	AccountID       uuid.UUID         `json:"accountId"`
	Type            ApplicationType   `json:"type"`
	ReferenceNumber string            `json:"referenceNumber"`
	Status          ApplicationStatus `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
