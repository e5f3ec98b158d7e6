package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"memo-go/internal/game"
)

const tableReadyTimeout = 2 * time.Minute

// SaveItem is one player's save as stored in the table.
type SaveItem struct {
	Joueur      string        `dynamodbav:"Joueur"`
	Level       int           `dynamodbav:"Level"`
	Mode        string        `dynamodbav:"Mode"`
	Points      int           `dynamodbav:"Points"`
	LevelPoints int           `dynamodbav:"Level_points"`
	Tables      []game.Symbol `dynamodbav:"Tables"`
	Solution    []game.Symbol `dynamodbav:"Solution,omitempty"`
	// Position is the time of the first save, in nanoseconds.
	Position *int64 `dynamodbav:"Position"`
}

// Client is the part of the DynamoDB API the save store uses.
type Client interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// EnsureTable creates the saves table keyed by player name when it does not
// exist yet, and waits for it to become active.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to describe table %s: %w", s.table, err)
	}

	_, err = s.client.CreateTable(ctx, s.tableSchema())
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)}, tableReadyTimeout); err != nil {
		return fmt.Errorf("failed waiting for table %s: %w", s.table, err)
	}
	return nil
}

func (s *Store) tableSchema() *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String(attrJoueur),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String(attrJoueur),
				KeyType:       types.KeyTypeHash,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}
