// Package merge implements keyed three-way merging with conflict detection.
// Scraper navigation graphs and knowledge-graph snapshots both merge their
// entries through Maps; only the value type and equality differ.
package merge

import "errors"

var ErrUnresolvedConflicts = errors.New("unresolved merge conflicts")

type Strategy string

const (
	StrategyFail   Strategy = "fail"
	StrategyOurs   Strategy = "ours"
	StrategyTheirs Strategy = "theirs"
	StrategyManual Strategy = "manual"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategyFail, StrategyOurs, StrategyTheirs, StrategyManual:
		return true
	}
	return false
}

// Side selects which version of a conflicted entry wins under manual resolution.
type Side string

const (
	SideBase   Side = "base"
	SideOurs   Side = "ours"
	SideTheirs Side = "theirs"
)

type ConflictKind string

const (
	ConflictBothModified ConflictKind = "both_modified"
	ConflictBothAdded    ConflictKind = "both_added"
	ConflictModifyDelete ConflictKind = "modify_delete"
)

// Conflict records one entry both sides changed incompatibly. Nil pointers
// mean the entry is absent on that side.
type Conflict[V any] struct {
	Key    string       `json:"key"`
	Kind   ConflictKind `json:"kind"`
	Base   *V           `json:"base,omitempty"`
	Ours   *V           `json:"ours,omitempty"`
	Theirs *V           `json:"theirs,omitempty"`
}

type Options struct {
	Strategy Strategy
	// Choices resolves individual keys under StrategyManual.
	Choices map[string]Side
}

// change classification of one side relative to base
type changeKind int

const (
	unchanged changeKind = iota
	added
	removed
	modified
)

func classify[V any](inBase bool, base V, in bool, val V, eq func(a, b V) bool) changeKind {
	switch {
	case !inBase && !in:
		return unchanged
	case !inBase && in:
		return added
	case inBase && !in:
		return removed
	case eq(base, val):
		return unchanged
	default:
		return modified
	}
}

// Maps merges ours and theirs against their common base. Entries changed on
// one side apply cleanly; identical changes on both sides are not conflicts.
// Unresolved conflicts cause a nil result and ErrUnresolvedConflicts.
func Maps[V any](base, ours, theirs map[string]V, eq func(a, b V) bool, opts Options) (map[string]V, []Conflict[V], error) {
	if opts.Strategy == "" {
		opts.Strategy = StrategyFail
	}
	if !opts.Strategy.Valid() {
		return nil, nil, errors.New("unknown merge strategy: " + string(opts.Strategy))
	}

	keys := map[string]struct{}{}
	for k := range base {
		keys[k] = struct{}{}
	}
	for k := range ours {
		keys[k] = struct{}{}
	}
	for k := range theirs {
		keys[k] = struct{}{}
	}

	result := make(map[string]V, len(keys))
	var conflicts []Conflict[V]

	for k := range keys {
		bv, inB := base[k]
		ov, inO := ours[k]
		tv, inT := theirs[k]

		oursKind := classify(inB, bv, inO, ov, eq)
		theirsKind := classify(inB, bv, inT, tv, eq)

		switch {
		case oursKind == unchanged && theirsKind == unchanged:
			if inB {
				result[k] = bv
			}
		case theirsKind == unchanged:
			if inO {
				result[k] = ov
			}
		case oursKind == unchanged:
			if inT {
				result[k] = tv
			}
		case oursKind == removed && theirsKind == removed:
			// both deleted, nothing to keep
		case inO && inT && eq(ov, tv):
			// identical change on both sides
			result[k] = ov
		default:
			c := Conflict[V]{Key: k, Kind: conflictKind(oursKind, theirsKind)}
			if inB {
				v := bv
				c.Base = &v
			}
			if inO {
				v := ov
				c.Ours = &v
			}
			if inT {
				v := tv
				c.Theirs = &v
			}
			if resolved, val, keep := resolve(c, opts); resolved {
				if keep {
					result[k] = val
				}
			} else {
				conflicts = append(conflicts, c)
			}
		}
	}

	if len(conflicts) > 0 {
		return nil, conflicts, ErrUnresolvedConflicts
	}
	return result, nil, nil
}

func conflictKind(o, t changeKind) ConflictKind {
	switch {
	case o == added && t == added:
		return ConflictBothAdded
	case o == removed || t == removed:
		return ConflictModifyDelete
	default:
		return ConflictBothModified
	}
}

// resolve reports whether the conflict is settled by the strategy, and if so
// whether the entry survives (keep=false means the winning side deleted it).
func resolve[V any](c Conflict[V], opts Options) (resolved bool, val V, keep bool) {
	var side Side
	switch opts.Strategy {
	case StrategyOurs:
		side = SideOurs
	case StrategyTheirs:
		side = SideTheirs
	case StrategyManual:
		s, ok := opts.Choices[c.Key]
		if !ok {
			return false, val, false
		}
		side = s
	default:
		return false, val, false
	}

	var pick *V
	switch side {
	case SideBase:
		pick = c.Base
	case SideOurs:
		pick = c.Ours
	case SideTheirs:
		pick = c.Theirs
	default:
		return false, val, false
	}
	if pick == nil {
		return true, val, false
	}
	return true, *pick, true
}
