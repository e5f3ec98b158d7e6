package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"memo-go/internal/game"
	awsinfra "memo-go/internal/infrastructure/aws"
	"memo-go/internal/infrastructure/aws/dynamodb"
	"memo-go/internal/infrastructure/aws/s3"
	"memo-go/internal/infrastructure/sqlstore"
)

type StoreKind string

const (
	KindSQLite   StoreKind = "sqlite"
	KindPostgres StoreKind = "postgres"
	KindDynamoDB StoreKind = "dynamodb"
	KindS3       StoreKind = "s3"
)

// Location is a parsed save store id.
type Location struct {
	Kind StoreKind
	// DSN is the sqlite path or postgres url.
	DSN string
	// Name is the DynamoDB table or S3 bucket.
	Name   string
	Prefix string
}

// ParseLocation reads a store id: postgres://..., dynamodb://<table>,
// s3://<bucket>/<prefix>, or else a sqlite file path.
func ParseLocation(id string) (Location, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Location{}, fmt.Errorf("%w: empty store id", game.ErrConfig)
	}

	scheme, _, found := strings.Cut(id, "://")
	if !found {
		return Location{Kind: KindSQLite, DSN: id}, nil
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return Location{Kind: KindPostgres, DSN: id}, nil
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(id, scheme+"://")
		if path == "" {
			return Location{}, fmt.Errorf("%w: %q has no file path", game.ErrConfig, id)
		}
		return Location{Kind: KindSQLite, DSN: path}, nil
	case "dynamodb", "s3":
		u, err := url.Parse(id)
		if err != nil {
			return Location{}, fmt.Errorf("%w: store id %q: %v", game.ErrConfig, id, err)
		}
		if u.Host == "" {
			return Location{}, fmt.Errorf("%w: %q has no %s name", game.ErrConfig, id, scheme)
		}
		loc := Location{Kind: StoreKind(strings.ToLower(scheme)), Name: u.Host}
		if loc.Kind == KindS3 {
			loc.Prefix = strings.Trim(u.Path, "/")
		}
		return loc, nil
	default:
		return Location{}, fmt.Errorf("%w: unsupported store %q", game.ErrConfig, scheme)
	}
}

// Open connects to the save store named by id. AWS stores use region.
func Open(ctx context.Context, id, region string) (game.SaveStore, error) {
	loc, err := ParseLocation(id)
	if err != nil {
		return nil, err
	}

	switch loc.Kind {
	case KindPostgres:
		return openSQL(ctx, sqlstore.DriverPostgres, loc.DSN)
	case KindDynamoDB:
		cfg, err := awsinfra.NewAWSConfig(ctx, region)
		if err != nil {
			return nil, err
		}
		store := dynamodb.NewStore(cfg.DynamoDB, loc.Name)
		if err := store.EnsureTable(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case KindS3:
		cfg, err := awsinfra.NewAWSConfig(ctx, region)
		if err != nil {
			return nil, err
		}
		return s3.NewStore(cfg.S3, loc.Name, loc.Prefix), nil
	default:
		return openSQL(ctx, sqlstore.DriverSQLite, loc.DSN)
	}
}

func openSQL(ctx context.Context, driver, dsn string) (game.SaveStore, error) {
	store, err := sqlstore.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	return store, nil
}
