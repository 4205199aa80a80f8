package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/homefix-api/internal/domain"
)

// MediaRepo provides typed DynamoDB operations for a media metadata table.
// The same repo backs both the media table and the user_images table.
type MediaRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMediaRepo(client *dynamodb.Client, tableName string) *MediaRepo {
	return &MediaRepo{client: client, tableName: tableName}
}

func (r *MediaRepo) Put(ctx context.Context, m *domain.Media) error {
	item, err := mediaItem(m)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": fieldMediaID},
	})
	return err
}

// mediaItem marshals m with upload_date in its sortable form.
func mediaItem(m *domain.Media) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return nil, fmt.Errorf("marshal media: %w", err)
	}
	item[fieldUploadDate] = sortKeyTime(m.UploadDate)
	return item, nil
}

func (r *MediaRepo) Get(ctx context.Context, mediaID string) (*domain.Media, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldMediaID, mediaID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("media not found: %w", domain.ErrNotFound)
	}
	var m domain.Media
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes the item only when it belongs to userID.
// A missing item or an ownership mismatch both report ErrNotFound.
func (r *MediaRepo) Delete(ctx context.Context, mediaID, userID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldMediaID, mediaID),
		ConditionExpression: aws.String("#u = :u"),
		ExpressionAttributeNames: map[string]string{
			"#u": fieldUserID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("media %s: %w", mediaID, domain.ErrNotFound)
	}
	return err
}

// ListByUser returns items uploaded by userID, newest first. A limit of zero returns all of them.
func (r *MediaRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Media, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexUserUploads),
		KeyConditionExpression: aws.String("#u = :u"),
		ExpressionAttributeNames: map[string]string{
			"#u": fieldUserID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	}
	return r.collect(ctx, input, limit)
}

// ListOthers returns up to limit items of the given kind not owned by userID, newest first.
func (r *MediaRepo) ListOthers(ctx context.Context, kind, userID string, limit int) ([]*domain.Media, error) {
	if limit <= 0 {
		return []*domain.Media{}, nil
	}
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(indexKindUploads),
		KeyConditionExpression: aws.String("#k = :k"),
		FilterExpression:       aws.String("#u <> :u"),
		ExpressionAttributeNames: map[string]string{
			"#k": fieldKind,
			"#u": fieldUserID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":k": &types.AttributeValueMemberS{Value: kind},
			":u": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	}
	return r.collect(ctx, input, limit)
}

// collect pages through a query. Filters apply after DynamoDB's page limit,
// so it keeps following LastEvaluatedKey until limit items are gathered.
// A limit of zero means no cap.
func (r *MediaRepo) collect(ctx context.Context, input *dynamodb.QueryInput, limit int) ([]*domain.Media, error) {
	items := make([]*domain.Media, 0)
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var m domain.Media
			if err := attributevalue.UnmarshalMap(raw, &m); err != nil {
				return nil, err
			}
			items = append(items, &m)
			if limit > 0 && len(items) == limit {
				return items, nil
			}
		}
		if out.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
