package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/id"
)

// CaseRepo provides typed DynamoDB operations for the cases table.
type CaseRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCaseRepo(client *dynamodb.Client, tableName string) *CaseRepo {
	return &CaseRepo{client: client, tableName: tableName}
}

func (r *CaseRepo) Insert(ctx context.Context, c *domain.Case) (string, error) {
	c.CaseID = id.New()
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return "", fmt.Errorf("marshal case: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return "", err
	}
	return c.CaseID, nil
}

func (r *CaseRepo) Get(ctx context.Context, caseID string) (*domain.Case, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("case_id", caseID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("case %s: %w", caseID, domain.ErrNotFound)
	}
	var c domain.Case
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepo) Update(ctx context.Context, caseID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("case_id", caseID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *CaseRepo) Delete(ctx context.Context, caseID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("case_id", caseID),
	})
	return err
}

// ListByParty returns cases where the named attribute (client_id or lawyer_id)
// matches userID.
func (r *CaseRepo) ListByParty(ctx context.Context, attr, userID string) ([]domain.Case, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		FilterExpression:         aws.String("#a = :u"),
		ExpressionAttributeNames: map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var cases []domain.Case
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *CaseRepo) ListAll(ctx context.Context) ([]domain.Case, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var cases []domain.Case
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// InteractionRepo records lawyer/client interactions (e.g. case openings).
type InteractionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInteractionRepo(client *dynamodb.Client, tableName string) *InteractionRepo {
	return &InteractionRepo{client: client, tableName: tableName}
}

func (r *InteractionRepo) Insert(ctx context.Context, in *domain.Interaction) error {
	in.InteractionID = id.New()
	item, err := attributevalue.MarshalMap(in)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}
