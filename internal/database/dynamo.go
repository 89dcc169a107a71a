package database

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserSecurityStore does point lookups against the user security table.
// The attribute set is schemaless; the service never interprets it.
type UserSecurityStore interface {
	// Get returns the full attribute set for the given user id, or
	// found == false when the key is absent.
	Get(ctx context.Context, userID string) (attrs map[string]interface{}, found bool, err error)
}

// itemGetter is the slice of the DynamoDB client the store uses.
type itemGetter interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoUserSecurityStore reads one item per request; no retries beyond
// the SDK defaults and no local cache.
type DynamoUserSecurityStore struct {
	client itemGetter
	table  string
}

func NewDynamoUserSecurityStore(ctx context.Context) (*DynamoUserSecurityStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	table := os.Getenv("USER_SECURITY_TABLE")
	if table == "" {
		table = "UserSecurity"
	}

	return &DynamoUserSecurityStore{
		client: dynamodb.NewFromConfig(cfg),
		table:  table,
	}, nil
}

func (s *DynamoUserSecurityStore) Get(ctx context.Context, userID string) (map[string]interface{}, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, false, err
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}

	var attrs map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &attrs); err != nil {
		return nil, false, err
	}
	return attrs, true, nil
}
