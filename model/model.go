// Package model holds the canonical Eros schema shared by the client
// services. The platform historically carried two competing shapes for a few
// records; the support-network-aware variant below is the single schema the
// SDK speaks.
package model

import "time"

// UserType discriminates the two account kinds.
type UserType string

const (
	UserTypePregnant       UserType = "PREGNANT"
	UserTypeSupportNetwork UserType = "SUPPORT_NETWORK"
)

// LinkStatus is the lifecycle status of a support link. Links are never
// hard-deleted; revocation moves them to INACTIVE.
type LinkStatus string

const (
	LinkStatusActive   LinkStatus = "ACTIVE"
	LinkStatusInactive LinkStatus = "INACTIVE"
	LinkStatusPending  LinkStatus = "PENDING"
)

// AppointmentStatus is the lifecycle status of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
)

// PaymentMethod values are lowercase on the wire, matching the processor.
type PaymentMethod string

const (
	PaymentPix        PaymentMethod = "pix"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
)

// PaymentStatus values are lowercase on the wire.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// User is the identity record cached in the session store. ShareCode is
// present only for pregnant users and is immutable once issued.
type User struct {
	ID                 string                  `json:"id"`
	Name               string                  `json:"name"`
	Email              string                  `json:"email"`
	Phone              string                  `json:"phone,omitempty"`
	UserType           UserType                `json:"userType"`
	Avatar             string                  `json:"avatar,omitempty"`
	ShareCode          string                  `json:"shareCode,omitempty"`
	PregnantWeeks      int                     `json:"pregnantWeeks,omitempty"`
	DueDate            string                  `json:"dueDate,omitempty"`
	SupportNetwork     []*SupportNetworkMember `json:"supportNetwork,omitempty"`
	SupportingPregnant *SupportLink            `json:"supportingPregnant,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	UpdatedAt          time.Time               `json:"updatedAt"`
}

// SupportNetworkMember is one entry in a pregnant user's network: the link
// metadata plus a snapshot of the supporting member's profile. The pregnant
// user's collection is the owning side.
type SupportNetworkMember struct {
	ID           string     `json:"id"`
	Relationship string     `json:"relationship"`
	Status       LinkStatus `json:"status"`
	Support      *User      `json:"support"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// SupportLink is the non-owning back-reference held by a support-network
// user: the link metadata plus a snapshot of the pregnant user they follow.
type SupportLink struct {
	ID           string     `json:"id"`
	Relationship string     `json:"relationship"`
	Status       LinkStatus `json:"status"`
	Pregnant     *User      `json:"pregnant"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Doctor is a care provider. Read-only from the client; the backend is the
// source of truth.
type Doctor struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Specialty      string      `json:"specialty"`
	Avatar         string      `json:"avatar,omitempty"`
	Rating         float64     `json:"rating,omitempty"`
	AvailableSlots []*TimeSlot `json:"availableSlots,omitempty"`
}

// TimeSlot is one bookable date/time pair for a doctor.
type TimeSlot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Appointment carries a denormalized doctor snapshot so completed lists
// render without a second fetch.
type Appointment struct {
	ID       string            `json:"id"`
	DoctorID string            `json:"doctorId"`
	Doctor   *Doctor           `json:"doctor,omitempty"`
	Date     string            `json:"date"`
	Time     string            `json:"time"`
	Type     string            `json:"type,omitempty"`
	Location string            `json:"location,omitempty"`
	Status   AppointmentStatus `json:"status"`
	Notes    string            `json:"notes,omitempty"`
}

// Payment is created alongside an appointment by the booking workflow; its
// completion finalizes the appointment.
type Payment struct {
	ID            string        `json:"id"`
	AppointmentID string        `json:"appointmentId"`
	Amount        float64       `json:"amount"`
	ServiceName   string        `json:"serviceName,omitempty"`
	Date          string        `json:"date"`
	Status        PaymentStatus `json:"status"`
	Method        PaymentMethod `json:"method,omitempty"`
}

// Medication and Supplement entries are append-only from the client.
type Medication struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type Supplement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Purpose   string `json:"purpose,omitempty"`
}

// Treatment aggregates the current medications and supplements.
type Treatment struct {
	Medications []*Medication `json:"medications"`
	Supplements []*Supplement `json:"supplements"`
}

// AuthSession is what a successful login, registration, or share-code
// redemption returns.
type AuthSession struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// AppointmentBooking is the create-appointment request payload.
type AppointmentBooking struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Type     string `json:"type,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
