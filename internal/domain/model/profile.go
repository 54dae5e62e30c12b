// Package model contains the normalized profile data passed between the
// platform adapter, the controller and the chart renderers.
package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/okian/zoneprofile/internal/domain/dedupe"
)

// SkillPrefix is stripped from transaction types when naming skills.
const SkillPrefix = "skill_"

// ErrInvalidStats is returned by ProfileStats.Validate.
var ErrInvalidStats = errors.New("invalid profile stats")

// ProfileStats is a normalized snapshot of a user's aggregate metrics.
type ProfileStats struct {
	Login      string  `json:"login"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	TotalUp    int64   `json:"totalUp"`
	TotalDown  int64   `json:"totalDown"`
	AuditRatio float64 `json:"auditRatio"`
	TotalXP    int64   `json:"totalXp"`
	Level      int64   `json:"level"`
}

// FullName joins first and last name.
func (p ProfileStats) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Validate checks that every numeric field is non-negative.
func (p ProfileStats) Validate() error {
	switch {
	case p.TotalUp < 0:
		return fmt.Errorf("%w: totalUp is negative", ErrInvalidStats)
	case p.TotalDown < 0:
		return fmt.Errorf("%w: totalDown is negative", ErrInvalidStats)
	case p.AuditRatio < 0:
		return fmt.Errorf("%w: auditRatio is negative", ErrInvalidStats)
	case p.TotalXP < 0:
		return fmt.Errorf("%w: totalXp is negative", ErrInvalidStats)
	case p.Level < 0:
		return fmt.Errorf("%w: level is negative", ErrInvalidStats)
	}
	return nil
}

// RawSkill is one skill transaction as returned by the data service.
type RawSkill struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// SkillEntry is a chart-ready skill: normalized name and a percentage in
// [0, 100].
type SkillEntry struct {
	Name       string
	Percentage float64
}

// Profile is everything one render cycle needs.
type Profile struct {
	Stats  ProfileStats
	Skills []SkillEntry
	// Warnings holds messages from a partially failed query.
	Warnings []string
}

// SkillName strips the skill prefix from a transaction type and uppercases it.
func SkillName(rawType string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Upper(language.Und).String(strings.TrimPrefix(rawType, SkillPrefix))
}

// NormalizeSkills keeps the first occurrence of every distinct type, in source
// order, and converts the survivors into SkillEntry values. Amounts are
// clamped to [0, 100].
func NormalizeSkills(ctx context.Context, raw []RawSkill) []SkillEntry {
	kept := dedupe.FirstSeen(ctx, raw, func(s RawSkill) string { return s.Type })
	out := make([]SkillEntry, 0, len(kept))
	for _, s := range kept {
		out = append(out, SkillEntry{
			Name:       SkillName(s.Type),
			Percentage: clampPercentage(s.Amount),
		})
	}
	return out
}

func clampPercentage(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
