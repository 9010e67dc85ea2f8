package model

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/types"
)

// InherentRiskLevel is one step on the impact or likelihood axis of the risk matrix
type InherentRiskLevel struct {
	Header
	Type  types.LevelType `json:"type" csv:"type"`
	Name  string          `json:"name" csv:"name"`
	Color string          `json:"color" csv:"color"`
	Score int             `json:"score" csv:"score"`
}

func (l *InherentRiskLevel) Bind(values map[string]string) error {
	bindString(values, "type", &l.Type)
	bindString(values, "name", &l.Name)
	bindString(values, "color", &l.Color)
	return bindInt(values, "score", &l.Score)
}

func (l *InherentRiskLevel) Draft() map[string]string {
	return map[string]string{
		"type":  l.Type.String(),
		"name":  l.Name,
		"color": l.Color,
		"score": strconv.Itoa(l.Score),
	}
}

func (l *InherentRiskLevel) Matches(q string) bool {
	return containsFold(q, l.Name, l.Type.String())
}

// Inherent score bands partition the product of impact and likelihood
const (
	MinBandScore = 1
	MaxBandScore = 25
)

// ScoreBand labels the inherent score interval [ScoreFrom, ScoreTo], both ends inclusive
type ScoreBand struct {
	Header
	Name      string `json:"name" csv:"name"`
	ScoreFrom int    `json:"scoreFrom" csv:"score_from"`
	ScoreTo   int    `json:"scoreTo" csv:"score_to"`
	Color     string `json:"color" csv:"color"`
}

func (b *ScoreBand) Bind(values map[string]string) error {
	bindString(values, "name", &b.Name)
	bindString(values, "color", &b.Color)
	if err := bindInt(values, "scoreFrom", &b.ScoreFrom); err != nil {
		return err
	}
	return bindInt(values, "scoreTo", &b.ScoreTo)
}

func (b *ScoreBand) Draft() map[string]string {
	return map[string]string{
		"name":      b.Name,
		"scoreFrom": strconv.Itoa(b.ScoreFrom),
		"scoreTo":   strconv.Itoa(b.ScoreTo),
		"color":     b.Color,
	}
}

func (b *ScoreBand) Matches(q string) bool {
	return containsFold(q, b.Name)
}

// Overlaps reports whether the closed intervals of b and other intersect
func (b *ScoreBand) Overlaps(other *ScoreBand) bool {
	return b.ScoreFrom <= other.ScoreTo && other.ScoreFrom <= b.ScoreTo
}

// CheckScoreBand verifies candidate against the other bands of the collection. The
// band being edited must not be part of others. Overlap is checked first so that a
// conflicting band reports the conflict rather than its range.
func CheckScoreBand(candidate *ScoreBand, others []*ScoreBand) error {
	for _, b := range others {
		if b.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(b) {
			return goerr.Wrap(ErrScoreBandOverlap, "score band overlaps",
				goerr.V(RecordIDKey, b.ID),
				goerr.V("score_from", candidate.ScoreFrom),
				goerr.V("score_to", candidate.ScoreTo))
		}
	}
	if candidate.ScoreFrom >= candidate.ScoreTo {
		return goerr.Wrap(ErrScoreBandOrder, "score band is inverted",
			goerr.V("score_from", candidate.ScoreFrom),
			goerr.V("score_to", candidate.ScoreTo))
	}
	if candidate.ScoreFrom < MinBandScore || candidate.ScoreTo > MaxBandScore {
		return goerr.Wrap(ErrScoreBandRange, "score band out of range",
			goerr.V("score_from", candidate.ScoreFrom),
			goerr.V("score_to", candidate.ScoreTo))
	}
	return nil
}

// ScoreBandsDescending orders bands by ScoreFrom, highest first
func ScoreBandsDescending(a, b *ScoreBand) int {
	return b.ScoreFrom - a.ScoreFrom
}
