package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/repository/memory"
	"github.com/secmon-lab/kottos/pkg/usecase"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	result := usecase.Seed(ctx, repo, []usecase.SeedEntry{
		{Collection: usecase.ControlFrequencies, Values: map[string]string{"name": "Daily"}},
		{Collection: usecase.ControlFrequencies, Values: map[string]string{"name": ""}},
		{Collection: usecase.ScoreBands, Values: map[string]string{"name": "Low", "scoreFrom": "1", "scoreTo": "5", "color": "#22c55e"}},
		{Collection: usecase.ScoreBands, Values: map[string]string{"name": "Clash", "scoreFrom": "4", "scoreTo": "6", "color": "#eab308"}},
		{Collection: "unknown", Values: map[string]string{"name": "x"}},
	})

	gt.Value(t, result.Created[usecase.ControlFrequencies]).Equal(1)
	gt.Value(t, result.Created[usecase.ScoreBands]).Equal(1)
	gt.Bool(t, result.HasIssues()).True()
	gt.Array(t, result.Issues).Length(3)

	gt.Value(t, result.Issues[0].Collection).Equal(usecase.ControlFrequencies)
	gt.Value(t, result.Issues[0].Index).Equal(1)
	gt.Value(t, result.Issues[0].Field).Equal("name")
	gt.Value(t, result.Issues[0].Message).Equal("Frequency name is required")

	gt.Value(t, result.Issues[1].Message).Equal("Score range overlaps with existing ranges")
	gt.Value(t, result.Issues[2].Message).Equal("unknown collection")

	gt.Value(t, repo.ControlFrequencies().Len(ctx)).Equal(1)
}
