package domain

import "time"

const ReportPending = "pending"

// Report is a user-submitted abuse or problem report, triaged by admins.
type Report struct {
	ReportID   string    `json:"id" dynamodbav:"report_id"`
	ReporterID string    `json:"reporter_id" dynamodbav:"reporter_id"`
	Title      string    `json:"report_title" dynamodbav:"report_title"`
	Text       string    `json:"report_text" dynamodbav:"report_text"`
	Type       string    `json:"report_type" dynamodbav:"report_type"`
	Status     string    `json:"status" dynamodbav:"status"`
	ReportedAt time.Time `json:"reported_at" dynamodbav:"reported_at"`
}

type CreateReportRequest struct {
	ReporterID string `json:"reporter_id" validate:"required"`
	Title      string `json:"report_title" validate:"required"`
	Text       string `json:"report_text" validate:"required"`
	Type       string `json:"report_type"`
}

type UpdateReportRequest struct {
	Title  *string `json:"report_title"`
	Text   *string `json:"report_text"`
	Type   *string `json:"report_type"`
	Status *string `json:"status"`
}
