package domain

import "time"

// Case is a legal case linking a client and a lawyer. The hydrated
// LawyerDetails/ClientDetails are filled by the service layer on reads and
// never persisted.
type Case struct {
	CaseID    string    `json:"id" dynamodbav:"case_id"`
	ClientID  string    `json:"client_id" dynamodbav:"client_id"`
	LawyerID  string    `json:"lawyer_id" dynamodbav:"lawyer_id"`
	Name      string    `json:"case_name" dynamodbav:"case_name"`
	Details   string    `json:"case_details" dynamodbav:"case_details"`
	Type      string    `json:"case_type" dynamodbav:"case_type"`
	Status    string    `json:"case_status" dynamodbav:"case_status"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`

	LawyerDetails *Account `json:"lawyer_details,omitempty" dynamodbav:"-"`
	ClientDetails *Account `json:"client_details,omitempty" dynamodbav:"-"`
}

type CreateCaseRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	LawyerID string `json:"lawyer_id" validate:"required"`
	Name     string `json:"case_name" validate:"required"`
	Details  string `json:"case_details"`
	Type     string `json:"case_type"`
	Status   string `json:"case_status"`
}

type UpdateCaseRequest struct {
	Name    *string `json:"case_name"`
	Details *string `json:"case_details"`
	Type    *string `json:"case_type"`
	Status  *string `json:"case_status"`
}

// Interaction records that a lawyer and client did business together
// (e.g. a case was opened). Used for engagement reporting.
type Interaction struct {
	InteractionID string    `json:"id" dynamodbav:"interaction_id"`
	LawyerID      string    `json:"lawyer_id" dynamodbav:"lawyer_id"`
	ClientID      string    `json:"client_id" dynamodbav:"client_id"`
	Type          string    `json:"interaction_type" dynamodbav:"interaction_type"`
	Timestamp     time.Time `json:"timestamp" dynamodbav:"timestamp"`
}
