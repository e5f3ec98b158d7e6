package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"memo-go/internal/game"
)

const (
	attrJoueur      = "Joueur"
	attrLevel       = "Level"
	attrMode        = "Mode"
	attrPoints      = "Points"
	attrLevelPoints = "Level_points"
	attrTables      = "Tables"
	attrSolution    = "Solution"
	attrPosition    = "Position"
)

// updatedAttrs are overwritten by every save.
var updatedAttrs = []string{attrLevel, attrMode, attrPoints, attrLevelPoints, attrTables, attrSolution}

// Store keeps one item per player in a DynamoDB table.
type Store struct {
	client Client
	table  string
	now    func() time.Time
}

func NewStore(client Client, table string) *Store {
	return &Store{
		client: client,
		table:  table,
		now:    time.Now,
	}
}

// Upsert writes every field of the save in one UpdateItem call. Position is
// only set on the first save so List keeps players in the order they arrived.
func (s *Store) Upsert(ctx context.Context, snap game.Snapshot) error {
	position := s.now().UnixNano()
	av, err := attributevalue.MarshalMap(SaveItem{
		Joueur:      snap.Joueur,
		Level:       snap.Level,
		Mode:        snap.Mode,
		Points:      snap.Points,
		LevelPoints: snap.LevelPoints,
		Tables:      snap.Tables,
		Solution:    snap.Solution,
		Position:    &position,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal save %s: %w", snap.Joueur, err)
	}

	names := map[string]string{"#position": attrPosition}
	values := map[string]types.AttributeValue{":position": av[attrPosition]}
	var set, remove []string
	for _, attr := range updatedAttrs {
		name := "#" + strings.ToLower(attr)
		names[name] = attr
		v, ok := av[attr]
		if !ok {
			remove = append(remove, name)
			continue
		}
		value := ":" + strings.ToLower(attr)
		values[value] = v
		set = append(set, name+" = "+value)
	}
	set = append(set, "#position = if_not_exists(#position, :position)")
	update := "SET " + strings.Join(set, ", ")
	if len(remove) > 0 {
		update += " REMOVE " + strings.Join(remove, ", ")
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       map[string]types.AttributeValue{attrJoueur: av[attrJoueur]},
		UpdateExpression:          aws.String(update),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", snap.Joueur, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]game.Snapshot, error) {
	var items []SaveItem
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{TableName: aws.String(s.table)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saves: %w", err)
		}
		var pageItems []SaveItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			return nil, fmt.Errorf("%w: %v", game.ErrCorruptSnapshot, err)
		}
		for _, item := range pageItems {
			if item.Joueur == "" {
				return nil, fmt.Errorf("%w: item without %s", game.ErrCorruptSnapshot, attrJoueur)
			}
			if item.Position == nil {
				return nil, fmt.Errorf("%w: %s: item without %s", game.ErrCorruptSnapshot, item.Joueur, attrPosition)
			}
		}
		items = append(items, pageItems...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if *items[i].Position != *items[j].Position {
			return *items[i].Position < *items[j].Position
		}
		return items[i].Joueur < items[j].Joueur
	})

	saves := make([]game.Snapshot, len(items))
	for i, it := range items {
		saves[i] = it.snapshot()
	}
	return saves, nil
}

func (s *Store) GetByIndex(ctx context.Context, index int) (game.Snapshot, error) {
	saves, err := s.List(ctx)
	if err != nil {
		return game.Snapshot{}, err
	}
	if index < 0 || index >= len(saves) {
		return game.Snapshot{}, game.ErrSaveNotFound
	}
	return saves[index], nil
}

func (s *Store) Close() error {
	return nil
}

func (it SaveItem) snapshot() game.Snapshot {
	snap := game.Snapshot{
		Joueur:      it.Joueur,
		Level:       it.Level,
		Mode:        it.Mode,
		Points:      it.Points,
		LevelPoints: it.LevelPoints,
		Tables:      it.Tables,
		Solution:    it.Solution,
	}
	if len(snap.Solution) == 0 {
		snap.Solution = nil
	}
	return snap
}
