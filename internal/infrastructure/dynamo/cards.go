package dynamo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/yurtapp/account-api/internal/domain"
)

// CardRepo provides typed DynamoDB operations for the cards table.
type CardRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCardRepo(client *dynamodb.Client, tableName string) *CardRepo {
	return &CardRepo{client: client, tableName: tableName}
}

func (r *CardRepo) Put(ctx context.Context, c *domain.Card) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CardRepo) Get(ctx context.Context, cardID string) (*domain.Card, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("card_id", cardID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("card not found: %w", domain.ErrNotFound)
	}
	var c domain.Card
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CardRepo) ListByUser(ctx context.Context, userID string) ([]domain.Card, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var cards []domain.Card
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CardRepo) Update(ctx context.Context, cardID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("card_id", cardID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *CardRepo) HardDelete(ctx context.Context, cardID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("card_id", cardID),
	})
	return err
}

// ClearDefault unsets the default flag on every card of the user except keep.
// Called before a card becomes the new default.
func (r *CardRepo) ClearDefault(ctx context.Context, userID, keepCardID string) error {
	cards, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	var firstErr error
	for _, c := range cards {
		if !c.Default || c.CardID == keepCardID {
			continue
		}
		if err := r.Update(ctx, c.CardID, map[string]interface{}{"is_default": false}); err != nil {
			slog.Warn("failed to clear default card", "card_id", c.CardID, "user_id", userID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
