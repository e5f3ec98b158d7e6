package s3

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memo-go/internal/game"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func (m *MockClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *MockClient) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

func keyIs(key string) interface{} {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Key) == key
	})
}

func body(s string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(s))}
}

func TestStoreUpsert(t *testing.T) {
	client := new(MockClient)
	store := NewStore(client, "memo", "/saves/")
	ctx := context.Background()

	snap := game.Snapshot{Joueur: "jo/ann", Mode: "Facile", Points: 2, Tables: []game.Symbol{"A", "*", "*", "A"}}
	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		if aws.ToString(in.Bucket) != "memo" || aws.ToString(in.Key) != "saves/jo%2Fann.json" {
			return false
		}
		var got game.Snapshot
		if err := json.NewDecoder(in.Body).Decode(&got); err != nil {
			return false
		}
		return got.Joueur == "jo/ann" && got.Points == 2
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Upsert(ctx, snap))
	client.AssertExpectations(t)
}

func TestStoreListAndGet(t *testing.T) {
	client := new(MockClient)
	store := NewStore(client, "memo", "saves")
	ctx := context.Background()

	client.On("ListObjectsV2", ctx, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.Prefix) == "saves/"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("saves/bob.json")},
			{Key: aws.String("saves/README")},
			{Key: aws.String("saves/alice.json")},
		},
	}, nil)
	client.On("GetObject", ctx, keyIs("saves/alice.json")).
		Return(body(`{"Joueur":"alice","Level":0,"Mode":"Facile","Points":1,"Level_points":1,"Tables":["*","*","*","*"]}`), nil)
	client.On("GetObject", ctx, keyIs("saves/bob.json")).
		Return(body(`{"Joueur":"bob","Level":0,"Mode":"Difficile","Points":5,"Level_points":5,"Tables":["A","*","*","A"],"Solution":["A","B","B","A"]}`), nil)

	saves, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, saves, 2)
	assert.Equal(t, "alice", saves[0].Joueur)
	assert.Nil(t, saves[0].Solution)
	assert.Equal(t, "bob", saves[1].Joueur)
	assert.Len(t, saves[1].Solution, 4)

	snap, err := store.GetByIndex(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Points)

	_, err = store.GetByIndex(ctx, 2)
	assert.ErrorIs(t, err, game.ErrSaveNotFound)
}

func TestStoreCorruptObject(t *testing.T) {
	client := new(MockClient)
	store := NewStore(client, "memo", "")
	ctx := context.Background()

	client.On("ListObjectsV2", ctx, mock.Anything).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{{Key: aws.String("eve.json")}},
	}, nil)
	client.On("GetObject", ctx, keyIs("eve.json")).Return(body(`{"Joueur":`), nil)

	_, err := store.List(ctx)
	assert.ErrorIs(t, err, game.ErrCorruptSnapshot)
}

func TestStoreListFailure(t *testing.T) {
	client := new(MockClient)
	store := NewStore(client, "memo", "")
	ctx := context.Background()

	client.On("ListObjectsV2", ctx, mock.Anything).Return(nil, errors.New("no such bucket"))

	_, err := store.List(ctx)
	assert.ErrorContains(t, err, "no such bucket")
}
