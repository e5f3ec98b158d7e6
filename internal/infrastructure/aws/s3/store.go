package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"memo-go/internal/game"
)

// Client is the part of the S3 API the save store uses.
type Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store keeps each player's save as one JSON object under prefix. Saves are
// listed in key order, which is the escaped player name.
type Store struct {
	client Client
	bucket string
	prefix string
}

func NewStore(client Client, bucket, prefix string) *Store {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *Store) key(name string) string {
	return s.prefix + url.PathEscape(name) + ".json"
}

func (s *Store) Upsert(ctx context.Context, snap game.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(snap.Joueur)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", snap.Joueur, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]game.Snapshot, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}

	saves := make([]game.Snapshot, 0, len(keys))
	for _, key := range keys {
		snap, err := s.get(ctx, key)
		if err != nil {
			return nil, err
		}
		saves = append(saves, snap)
	}
	return saves, nil
}

func (s *Store) GetByIndex(ctx context.Context, index int) (game.Snapshot, error) {
	keys, err := s.keys(ctx)
	if err != nil {
		return game.Snapshot{}, err
	}
	if index < 0 || index >= len(keys) {
		return game.Snapshot{}, game.ErrSaveNotFound
	}
	return s.get(ctx, keys[index])
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) keys(ctx context.Context) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list saves: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, ".json") {
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) get(ctx context.Context, key string) (game.Snapshot, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer out.Body.Close()

	var snap game.Snapshot
	if err := json.NewDecoder(out.Body).Decode(&snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %s: %v", game.ErrCorruptSnapshot, key, err)
	}
	return snap, nil
}
