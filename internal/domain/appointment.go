package domain

import "time"

// Appointment statuses. An appointment starts pending and is accepted or
// rejected by the lawyer.
const (
	AppointmentPending  = "pending"
	AppointmentAccepted = "accepted"
	AppointmentRejected = "rejected"
)

type Appointment struct {
	AppointmentID string     `json:"id" dynamodbav:"appointment_id"`
	ClientID      string     `json:"client_id" dynamodbav:"client_id"`
	LawyerID      string     `json:"lawyer_id" dynamodbav:"lawyer_id"`
	Title         string     `json:"appointment_title" dynamodbav:"appointment_title"`
	Status        string     `json:"appointment_status" dynamodbav:"appointment_status"`
	Date          *time.Time `json:"appointment_date,omitempty" dynamodbav:"appointment_date"`
	CreatedAt     time.Time  `json:"created_at" dynamodbav:"created_at"`
}

type CreateAppointmentRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	LawyerID string `json:"lawyer_id" validate:"required"`
	Title    string `json:"appointment_title" validate:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Date   string `json:"date"` // RFC 3339; required when accepting
}
