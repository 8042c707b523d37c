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

// AddressRepo provides typed DynamoDB operations for the addresses table.
type AddressRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAddressRepo(client *dynamodb.Client, tableName string) *AddressRepo {
	return &AddressRepo{client: client, tableName: tableName}
}

func (r *AddressRepo) Put(ctx context.Context, a *domain.Address) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AddressRepo) Get(ctx context.Context, addressID string) (*domain.Address, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("address_id", addressID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("address not found: %w", domain.ErrNotFound)
	}
	var a domain.Address
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
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
	var addresses []domain.Address
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *AddressRepo) Update(ctx context.Context, addressID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("address_id", addressID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *AddressRepo) HardDelete(ctx context.Context, addressID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("address_id", addressID),
	})
	return err
}

// ClearDefault unsets the default flag on every address of the user except keep.
func (r *AddressRepo) ClearDefault(ctx context.Context, userID, keepAddressID string) error {
	addresses, err := r.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	var firstErr error
	for _, a := range addresses {
		if !a.Default || a.AddressID == keepAddressID {
			continue
		}
		if err := r.Update(ctx, a.AddressID, map[string]interface{}{"is_default": false}); err != nil {
			slog.Warn("failed to clear default address", "address_id", a.AddressID, "user_id", userID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
