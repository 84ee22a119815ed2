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

const defaultConfigurationsTableName = "configurations"

type configurationItem struct {
	ID          string                        `dynamodbav:"id"`
	ProductType string                        `dynamodbav:"product_type"`
	Doc         entities.ProductConfiguration `dynamodbav:"doc"`
	CreatedAt   string                        `dynamodbav:"created_at"`
	UpdatedAt   string                        `dynamodbav:"updated_at"`
}

// ConfigurationDynamoRepository persists ProductConfiguration entities in
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The full entity is stored as a document attribute; product_type and the
// timestamps are projected out for filtering and ordering.
type ConfigurationDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IConfigurationRepository = (*ConfigurationDynamoRepository)(nil)

func NewConfigurationDynamoRepository(ddb *dynamodb.Client) *ConfigurationDynamoRepository {
	return &ConfigurationDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CONFIGURATIONS_TABLE", defaultConfigurationsTableName),
	}
}

func toConfigurationItem(cfg entities.ProductConfiguration) configurationItem {
	return configurationItem{
		ID:          cfg.ID,
		ProductType: string(cfg.ProductType),
		Doc:         cfg,
		CreatedAt:   formatTime(cfg.CreatedAt),
		UpdatedAt:   formatTime(cfg.UpdatedAt),
	}
}

func (r *ConfigurationDynamoRepository) Create(ctx context.Context, cfg entities.ProductConfiguration) (entities.ProductConfiguration, error) {
	av, err := attributevalue.MarshalMap(toConfigurationItem(cfg))
	if err != nil {
		return entities.ProductConfiguration{}, err
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
		return entities.ProductConfiguration{}, err
	}
	return cfg, nil
}

func (r *ConfigurationDynamoRepository) GetByID(ctx context.Context, id string) (entities.ProductConfiguration, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ProductConfiguration{}, err
	}
	if len(out.Item) == 0 {
		return entities.ProductConfiguration{}, nil
	}

	var it configurationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ProductConfiguration{}, err
	}
	return it.Doc, nil
}

// Update replaces the stored document, conditional on the record existing.
func (r *ConfigurationDynamoRepository) Update(ctx context.Context, cfg entities.ProductConfiguration) (entities.ProductConfiguration, error) {
	av, err := attributevalue.MarshalMap(toConfigurationItem(cfg))
	if err != nil {
		return entities.ProductConfiguration{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ProductConfiguration{}, nil
		}
		return entities.ProductConfiguration{}, err
	}
	return cfg, nil
}

func (r *ConfigurationDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

// List scans the table, optionally filtered by product type, orders by
// creation time and slices the requested page. Volumes here are back-office
// scale; a cursor-based listing is not worth the complexity yet.
func (r *ConfigurationDynamoRepository) List(ctx context.Context, filter interfaces.ListConfigurationsFilter) ([]entities.ProductConfiguration, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	}
	if filter.ProductType != "" {
		input.FilterExpression = aws.String("#product_type = :product_type")
		input.ExpressionAttributeNames = map[string]string{"#product_type": "product_type"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":product_type": &types.AttributeValueMemberS{Value: string(filter.ProductType)},
		}
	}

	var items []configurationItem
	paginator := dynamodb.NewScanPaginator(r.ddb, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []configurationItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt < items[j].CreatedAt })

	start := (filter.Page - 1) * filter.Limit
	if start >= len(items) {
		return []entities.ProductConfiguration{}, nil
	}
	end := start + filter.Limit
	if end > len(items) {
		end = len(items)
	}

	out := make([]entities.ProductConfiguration, 0, end-start)
	for _, it := range items[start:end] {
		out = append(out, it.Doc)
	}
	return out, nil
}
