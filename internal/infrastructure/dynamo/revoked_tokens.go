package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/homefix-api/internal/domain"
)

// RevokedTokenRepo stores logged-out tokens until their natural expiry.
// Rows are removed by the table's TTL on expires_at.
type RevokedTokenRepo struct {
	client    *dynamodb.Client
	tableName string
	now       func() time.Time
}

func NewRevokedTokenRepo(client *dynamodb.Client, tableName string) *RevokedTokenRepo {
	return &RevokedTokenRepo{client: client, tableName: tableName, now: time.Now}
}

func (r *RevokedTokenRepo) Revoke(ctx context.Context, token, userID string, expiresAt time.Time) error {
	item, err := attributevalue.MarshalMap(&domain.RevokedToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
		CreatedAt: r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal revoked token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// IsRevoked reports whether token was revoked. TTL deletion lags, so rows
// past expires_at are treated as gone.
func (r *RevokedTokenRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldToken, token),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if out.Item == nil {
		return false, nil
	}
	var rt domain.RevokedToken
	if err := attributevalue.UnmarshalMap(out.Item, &rt); err != nil {
		return false, err
	}
	return rt.ActiveAt(r.now()), nil
}
