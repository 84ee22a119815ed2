package database

import (
	"context"

	appconfig "gardenbuild/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog/log"
)

// ConnectDynamoDB creates a DynamoDB client from application configuration.
// With DynamoDBEndpoint set it targets a local container instead of AWS.
func ConnectDynamoDB(cfg appconfig.AWSConfig) *dynamodb.Client {
	awsCfg, err := newAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create dynamodb config")
	}
	return dynamodb.NewFromConfig(awsCfg)
}

func newAWSConfig(ctx context.Context, cfg appconfig.AWSConfig) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	}

	if cfg.DynamoDBEndpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: cfg.DynamoDBEndpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, config.WithEndpointResolverWithOptions(resolver))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}
