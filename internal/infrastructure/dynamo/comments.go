package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/id"
)

// CommentRepo covers lawyer comments and their replies. Replies live under
// PK comment_id, SK reply_id, mirroring the answers layout.
type CommentRepo struct {
	client       *dynamodb.Client
	commentTable string
	replyTable   string
}

func NewCommentRepo(client *dynamodb.Client, commentTable, replyTable string) *CommentRepo {
	return &CommentRepo{client: client, commentTable: commentTable, replyTable: replyTable}
}

func (r *CommentRepo) Insert(ctx context.Context, c *domain.Comment) (string, error) {
	c.CommentID = id.New()
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return "", fmt.Errorf("marshal comment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.commentTable),
		Item:      item,
	})
	if err != nil {
		return "", err
	}
	return c.CommentID, nil
}

func (r *CommentRepo) Get(ctx context.Context, commentID string) (*domain.Comment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.commentTable),
		Key:       strKey("comment_id", commentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}
	var c domain.Comment
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) listBy(ctx context.Context, attr, value string) ([]domain.Comment, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(r.commentTable),
		FilterExpression:         aws.String("#a = :v"),
		ExpressionAttributeNames: map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}
	var comments []domain.Comment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Comment, error) {
	return r.listBy(ctx, "client_id", clientID)
}

func (r *CommentRepo) ListByLawyer(ctx context.Context, lawyerID string) ([]domain.Comment, error) {
	return r.listBy(ctx, "lawyer_id", lawyerID)
}

// Delete removes the comment and all of its replies.
func (r *CommentRepo) Delete(ctx context.Context, commentID string) error {
	replies, err := r.ListReplies(ctx, commentID)
	if err != nil {
		return err
	}
	for _, rep := range replies {
		_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.replyTable),
			Key:       compositeKey("comment_id", commentID, "reply_id", rep.ReplyID),
		})
		if err != nil {
			return err
		}
	}
	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.commentTable),
		Key:       strKey("comment_id", commentID),
	})
	return err
}

func (r *CommentRepo) InsertReply(ctx context.Context, rep *domain.CommentReply) (string, error) {
	rep.ReplyID = id.New()
	item, err := attributevalue.MarshalMap(rep)
	if err != nil {
		return "", fmt.Errorf("marshal reply: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.replyTable),
		Item:      item,
	})
	if err != nil {
		return "", err
	}
	return rep.ReplyID, nil
}

func (r *CommentRepo) ListReplies(ctx context.Context, commentID string) ([]domain.CommentReply, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.replyTable),
		KeyConditionExpression: aws.String("comment_id = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: commentID},
		},
	})
	if err != nil {
		return nil, err
	}
	var replies []domain.CommentReply
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}
