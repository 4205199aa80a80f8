package dynamo

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/homefix-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortKeyTime_OrdersWithinOneSecond(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	earlier := sortKeyTime(base.Add(100 * time.Millisecond)).Value
	later := sortKeyTime(base.Add(120 * time.Millisecond)).Value

	assert.Equal(t, "2026-03-01T10:00:05.100000000Z", earlier)
	assert.Equal(t, "2026-03-01T10:00:05.120000000Z", later)
	assert.Less(t, earlier, later)
	assert.Less(t, sortKeyTime(base).Value, earlier)
}

func TestSortKeyTime_NormalisesToUTC(t *testing.T) {
	zone := time.FixedZone("EAT", 3*60*60)
	at := time.Date(2026, 3, 1, 13, 0, 5, 0, zone)
	assert.Equal(t, "2026-03-01T10:00:05.000000000Z", sortKeyTime(at).Value)
}

func TestMediaItem_UploadDateRoundTrip(t *testing.T) {
	uploaded := time.Date(2026, 3, 1, 10, 0, 5, 100_000_000, time.UTC)
	m := &domain.Media{MediaID: "m1", UserID: "u1", Kind: "media", UploadDate: uploaded}

	item, err := mediaItem(m)
	require.NoError(t, err)
	s, ok := item[fieldUploadDate].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "2026-03-01T10:00:05.100000000Z", s.Value)

	var got domain.Media
	require.NoError(t, attributevalue.UnmarshalMap(item, &got))
	assert.True(t, uploaded.Equal(got.UploadDate))
	assert.Equal(t, "u1", got.UserID)
}
