package domain

import "time"

// Comment is a client's review of a lawyer. Rating 0 means the comment carries
// no rating; 1..5 folds into the lawyer's aggregate rating.
type Comment struct {
	CommentID string    `json:"id" dynamodbav:"comment_id"`
	ClientID  string    `json:"client_id" dynamodbav:"client_id"`
	LawyerID  string    `json:"lawyer_id" dynamodbav:"lawyer_id"`
	Text      string    `json:"comment_text" dynamodbav:"comment_text"`
	Rating    int       `json:"rating,omitempty" dynamodbav:"rating"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`

	Client  *Account       `json:"client_data,omitempty" dynamodbav:"-"`
	Replies []CommentReply `json:"replies,omitempty" dynamodbav:"-"`
}

// CommentReply is the lawyer's response to a comment.
// Stored under PK comment_id, SK reply_id.
type CommentReply struct {
	CommentID string    `json:"comment_id" dynamodbav:"comment_id"`
	ReplyID   string    `json:"id" dynamodbav:"reply_id"`
	LawyerID  string    `json:"lawyer_id" dynamodbav:"lawyer_id"`
	Text      string    `json:"reply_text" dynamodbav:"reply_text"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateCommentRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	LawyerID string `json:"lawyer_id" validate:"required"`
	Text     string `json:"comment_text" validate:"required"`
	Rating   int    `json:"rating" validate:"gte=0,lte=5"`
}

type CreateReplyRequest struct {
	LawyerID string `json:"lawyer_id" validate:"required"`
	Text     string `json:"reply_text" validate:"required"`
}
