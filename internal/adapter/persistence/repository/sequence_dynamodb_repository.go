package repository

import (
	"context"
	"fmt"
	"strconv"

	"gardenbuild/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQuoteCountersTableName = "quote_counters"

// QuoteSequenceDynamoRepository hands out sequence values per quoting epoch
// using a DynamoDB atomic counter. The counter row is created on first use,
// so a new quarter needs no provisioning step.
//
// Table requirements:
//   - quote_counters: PK epoch_id (string)
type QuoteSequenceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteSequenceRepository = (*QuoteSequenceDynamoRepository)(nil)

func NewQuoteSequenceDynamoRepository(ddb *dynamodb.Client) *QuoteSequenceDynamoRepository {
	return &QuoteSequenceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTE_COUNTERS_TABLE", defaultQuoteCountersTableName),
	}
}

func (r *QuoteSequenceDynamoRepository) Next(ctx context.Context, epochID string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"epoch_id": &types.AttributeValueMemberS{Value: epochID},
		},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}

	attr, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s returned no numeric seq attribute", epochID)
	}
	seq, err := strconv.ParseInt(attr.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s returned malformed seq %q: %w", epochID, attr.Value, err)
	}
	return seq, nil
}
