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

// QuestionRepo covers the questions table and the answers table.
// Answers live under PK question_id, SK answer_id so a question's answers are
// one Query away and cascade deletes stay cheap.
type QuestionRepo struct {
	client        *dynamodb.Client
	questionTable string
	answerTable   string
}

func NewQuestionRepo(client *dynamodb.Client, questionTable, answerTable string) *QuestionRepo {
	return &QuestionRepo{client: client, questionTable: questionTable, answerTable: answerTable}
}

func (r *QuestionRepo) Insert(ctx context.Context, q *domain.Question) (string, error) {
	q.QuestionID = id.New()
	item, err := attributevalue.MarshalMap(q)
	if err != nil {
		return "", fmt.Errorf("marshal question: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.questionTable),
		Item:      item,
	})
	if err != nil {
		return "", err
	}
	return q.QuestionID, nil
}

func (r *QuestionRepo) Get(ctx context.Context, questionID string) (*domain.Question, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.questionTable),
		Key:       strKey("question_id", questionID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("question %s: %w", questionID, domain.ErrNotFound)
	}
	var q domain.Question
	if err := attributevalue.UnmarshalMap(out.Item, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepo) ListAll(ctx context.Context) ([]domain.Question, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.questionTable),
	})
	if err != nil {
		return nil, err
	}
	var questions []domain.Question
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Question, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.questionTable),
		FilterExpression: aws.String("client_id = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}
	var questions []domain.Question
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Delete removes the question and all of its answers.
func (r *QuestionRepo) Delete(ctx context.Context, questionID string) error {
	answers, err := r.ListAnswers(ctx, questionID)
	if err != nil {
		return err
	}
	for _, a := range answers {
		_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.answerTable),
			Key:       compositeKey("question_id", questionID, "answer_id", a.AnswerID),
		})
		if err != nil {
			return err
		}
	}
	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.questionTable),
		Key:       strKey("question_id", questionID),
	})
	return err
}

func (r *QuestionRepo) InsertAnswer(ctx context.Context, a *domain.Answer) (string, error) {
	a.AnswerID = id.New()
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return "", fmt.Errorf("marshal answer: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.answerTable),
		Item:      item,
	})
	if err != nil {
		return "", err
	}
	return a.AnswerID, nil
}

func (r *QuestionRepo) ListAnswers(ctx context.Context, questionID string) ([]domain.Answer, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.answerTable),
		KeyConditionExpression: aws.String("question_id = :q"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":q": &types.AttributeValueMemberS{Value: questionID},
		},
	})
	if err != nil {
		return nil, err
	}
	var answers []domain.Answer
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
