// Package validators holds the pure field predicates shared by every write
// path. All predicates are total and side-effect free; callers run them
// before opening any transaction so a failed check never leaves partial
// state behind.
package validators

import "github.com/sundaydevr/astral-databank-core/pkg/ledger/models"

// Limits is the explicit validation configuration. The historical codebase
// had duplicate create/update entry points whose validator coverage silently
// differed; that is collapsed here into one strictness knob that is always
// applied in full.
type Limits struct {
	LabelMax    int
	HashLen     int
	ContentMax  int
	CategoryMax int
	TagsMax     int
	TagMax      int
	DurationMax uint64
}

// DefaultLimits matches the on-ledger field widths.
var DefaultLimits = Limits{
	LabelMax:    50,
	HashLen:     64,
	ContentMax:  200,
	CategoryMax: 20,
	TagsMax:     5,
	TagMax:      30,
	// ~1 year at one height per ~10 minutes.
	DurationMax: 52560,
}

func (l Limits) Label(s string) bool {
	return len(s) >= 1 && len(s) <= l.LabelMax
}

// Hash accepts only the fixed-width digest representation.
func (l Limits) Hash(s string) bool {
	return len(s) == l.HashLen
}

func (l Limits) Content(s string) bool {
	return len(s) >= 1 && len(s) <= l.ContentMax
}

func (l Limits) Category(s string) bool {
	return len(s) >= 1 && len(s) <= l.CategoryMax
}

// TagShape checks the collection shape only; element widths are a separate
// concern reported with a different error kind.
func (l Limits) TagShape(tags []string) bool {
	return len(tags) >= 1 && len(tags) <= l.TagsMax
}

// TagElements reports whether every tag element is within width bounds.
func (l Limits) TagElements(tags []string) bool {
	for _, tag := range tags {
		if len(tag) < 1 || len(tag) > l.TagMax {
			return false
		}
	}
	return true
}

func (l Limits) Duration(d uint64) bool {
	return d > 0 && d <= l.DurationMax
}

// Tier recognizes exactly the three grant tiers.
func Tier(t models.GrantTier) bool {
	switch t {
	case models.TierViewer, models.TierEditor, models.TierManager:
		return true
	}
	return false
}

// Grantee forbids self-grants.
func Grantee(caller, target string) bool {
	return target != caller && target != ""
}
