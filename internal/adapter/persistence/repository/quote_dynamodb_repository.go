package repository

import (
	"context"
	"errors"
	"sort"

	"gardenbuild/internal/domain/entities"
	"gardenbuild/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName       = "quotes"
	defaultQuoteNumbersTableName = "quote_numbers"
	quotesNumberIndex            = "quote_number-index"
	quotesConfigurationIndex     = "configuration_id-index"
)

type quoteItem struct {
	ID                   string                        `dynamodbav:"id"`
	QuoteNumber          string                        `dynamodbav:"quote_number"`
	ConfigurationID      string                        `dynamodbav:"configuration_id"`
	Customer             entities.Customer             `dynamodbav:"customer"`
	Status               string                        `dynamodbav:"status"`
	TotalPaid            float64                       `dynamodbav:"total_paid"`
	ExpectedInstallments int                           `dynamodbav:"expected_installments,omitempty"`
	History              []entities.PaymentHistoryItem `dynamodbav:"payment_history"`
	RetentionExpiry      string                        `dynamodbav:"retention_expires_at"`
	RequestedAt          string                        `dynamodbav:"requested_at"`
	UpdatedAt            string                        `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists QuoteRequest entities in DynamoDB.
//
// Table requirements:
//   - quotes: PK id (string), GSI quote_number-index (PK quote_number),
//     GSI configuration_id-index (PK configuration_id)
//   - quote_numbers: PK quote_number (string), reservation guard items
//
// Create reserves the quote number with a conditional put on the guard table
// before writing the quote; a failed reservation maps to
// interfaces.ErrDuplicateQuoteNumber so the use case can re-allocate.
type QuoteDynamoRepository struct {
	ddb          *dynamodb.Client
	tableName    string
	numbersTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:          ddb,
		tableName:    getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
		numbersTable: getenvDefault("QUOTE_NUMBERS_TABLE", defaultQuoteNumbersTableName),
	}
}

func toQuoteItem(q entities.QuoteRequest) quoteItem {
	return quoteItem{
		ID:                   q.ID,
		QuoteNumber:          q.QuoteNumber,
		ConfigurationID:      q.ConfigurationID,
		Customer:             q.Customer,
		Status:               string(q.Payment.Status),
		TotalPaid:            q.Payment.TotalPaid,
		ExpectedInstallments: q.Payment.ExpectedInstallments,
		History:              q.Payment.History,
		RetentionExpiry:      formatTime(q.RetentionExpiry),
		RequestedAt:          formatTime(q.RequestedAt),
		UpdatedAt:            formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.QuoteRequest {
	history := it.History
	if history == nil {
		history = []entities.PaymentHistoryItem{}
	}
	return entities.QuoteRequest{
		ID:              it.ID,
		QuoteNumber:     it.QuoteNumber,
		ConfigurationID: it.ConfigurationID,
		Customer:        it.Customer,
		Payment: entities.Payment{
			Status:               entities.QuoteStatus(it.Status),
			TotalPaid:            it.TotalPaid,
			ExpectedInstallments: it.ExpectedInstallments,
			History:              history,
		},
		RetentionExpiry: parseTime(it.RetentionExpiry),
		RequestedAt:     parseTime(it.RequestedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.QuoteRequest) (entities.QuoteRequest, error) {
	// Reserve the number first. The guard row is what makes quote numbers
	// globally unique even if a counter is ever reseeded by hand.
	_, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.numbersTable),
		Item: map[string]types.AttributeValue{
			"quote_number": &types.AttributeValueMemberS{Value: q.QuoteNumber},
			"quote_id":     &types.AttributeValueMemberS{Value: q.ID},
		},
		ConditionExpression: aws.String("attribute_not_exists(#quote_number)"),
		ExpressionAttributeNames: map[string]string{
			"#quote_number": "quote_number",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.QuoteRequest{}, interfaces.ErrDuplicateQuoteNumber
		}
		return entities.QuoteRequest{}, err
	}

	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuoteRequest, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuoteRequest{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) GetByNumber(ctx context.Context, number string) (entities.QuoteRequest, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesNumberIndex),
		KeyConditionExpression: aws.String("#quote_number = :quote_number"),
		ExpressionAttributeNames: map[string]string{
			"#quote_number": "quote_number",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":quote_number": &types.AttributeValueMemberS{Value: number},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	if len(out.Items) == 0 {
		return entities.QuoteRequest{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) UpdateStatusByID(ctx context.Context, id string, status entities.QuoteStatus) (entities.QuoteRequest, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) UpdateCustomerByID(ctx context.Context, id string, customer entities.Customer) (entities.QuoteRequest, error) {
	av, err := attributevalue.Marshal(customer)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #customer = :customer, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":customer":   av,
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#customer":   "customer",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// AppendPayment appends the ledger entry and moves the running total in a
// single UpdateItem, so concurrent appends can never lose a delta.
func (r *QuoteDynamoRepository) AppendPayment(ctx context.Context, id string, item entities.PaymentHistoryItem, delta float64) (entities.QuoteRequest, error) {
	av, err := attributevalue.Marshal(item)
	if err != nil {
		return entities.QuoteRequest{}, err
	}
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_history = list_append(if_not_exists(#payment_history, :empty), :item), #updated_at = :updated_at ADD #total_paid :delta"
		vals := map[string]types.AttributeValue{
			":item":       &types.AttributeValueMemberL{Value: []types.AttributeValue{av}},
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":delta":      &types.AttributeValueMemberN{Value: floatToString(delta)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_history": "payment_history",
			"#total_paid":      "total_paid",
			"#updated_at":      "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.QuoteRequest, error) {
	now := formatTimeNow()
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.QuoteRequest{}, nil
		}
		return entities.QuoteRequest{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.QuoteRequest{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.QuoteRequest{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func (r *QuoteDynamoRepository) List(ctx context.Context, filter interfaces.ListQuotesFilter) ([]entities.QuoteRequest, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}

	names := map[string]string{}
	vals := map[string]types.AttributeValue{}
	expr := ""
	if filter.Status != "" {
		expr = "#status = :status"
		names["#status"] = "status"
		vals[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
	}
	if filter.ConfigurationID != "" {
		if expr != "" {
			expr += " AND "
		}
		expr += "#configuration_id = :configuration_id"
		names["#configuration_id"] = "configuration_id"
		vals[":configuration_id"] = &types.AttributeValueMemberS{Value: filter.ConfigurationID}
	}
	if expr != "" {
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = vals
	}

	var items []quoteItem
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []quoteItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].RequestedAt < items[j].RequestedAt })

	start := (filter.Page - 1) * filter.Limit
	if start >= len(items) {
		return []entities.QuoteRequest{}, nil
	}
	end := start + filter.Limit
	if end > len(items) {
		end = len(items)
	}

	out := make([]entities.QuoteRequest, 0, end-start)
	for _, it := range items[start:end] {
		out = append(out, fromQuoteItem(it))
	}
	return out, nil
}

// CountByConfigurationID is the usage check behind configuration deletion.
func (r *QuoteDynamoRepository) CountByConfigurationID(ctx context.Context, configurationID string) (int, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesConfigurationIndex),
		KeyConditionExpression: aws.String("#configuration_id = :configuration_id"),
		ExpressionAttributeNames: map[string]string{
			"#configuration_id": "configuration_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":configuration_id": &types.AttributeValueMemberS{Value: configurationID},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		return 0, err
	}
	return int(out.Count), nil
}
