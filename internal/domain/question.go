package domain

import "time"

// Question is a public legal question asked by a client.
type Question struct {
	QuestionID string    `json:"id" dynamodbav:"question_id"`
	ClientID   string    `json:"client_id" dynamodbav:"client_id"`
	Title      string    `json:"question_title" dynamodbav:"question_title"`
	Text       string    `json:"question_text" dynamodbav:"question_text"`
	AskedAt    time.Time `json:"asked_at" dynamodbav:"asked_at"`

	Client  *Account `json:"client,omitempty" dynamodbav:"-"`
	Answers []Answer `json:"answers,omitempty" dynamodbav:"-"`
}

// Answer is a lawyer's reply to a question.
// Stored under PK question_id, SK answer_id.
type Answer struct {
	QuestionID string    `json:"question_id" dynamodbav:"question_id"`
	AnswerID   string    `json:"id" dynamodbav:"answer_id"`
	LawyerID   string    `json:"lawyer_id" dynamodbav:"lawyer_id"`
	Text       string    `json:"lawyer_text" dynamodbav:"lawyer_text"`
	RepliedAt  time.Time `json:"replied_at" dynamodbav:"replied_at"`

	Lawyer *Account `json:"lawyer,omitempty" dynamodbav:"-"`
}

type CreateQuestionRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	Title    string `json:"question_title" validate:"required"`
	Text     string `json:"question_text" validate:"required"`
}

type CreateAnswerRequest struct {
	LawyerID string `json:"lawyer_id" validate:"required"`
	Text     string `json:"lawyer_text" validate:"required"`
}
