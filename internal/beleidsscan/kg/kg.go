// Package kg implements git-like versioning over knowledge-graph snapshots:
// branches, commits, stashes, and a three-way merge keyed on subject+predicate.
package kg

import (
	"context"
	"errors"
	"time"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/merge"
)

var ErrCommitNotFound = errors.New("commit not found")

type Triple struct {
	Subject   string `json:"subject" bson:"subject"`
	Predicate string `json:"predicate" bson:"predicate"`
	Object    string `json:"object" bson:"object"`
}

// Key identifies the statement slot a triple occupies. Two triples with the
// same subject and predicate but different objects contend for the same slot.
func (t Triple) Key() string {
	return t.Subject + "|" + t.Predicate
}

// Snapshot is the full state of the knowledge graph at one commit.
type Snapshot map[string]Triple

func SnapshotOf(triples []Triple) Snapshot {
	s := make(Snapshot, len(triples))
	for _, t := range triples {
		s[t.Key()] = t
	}
	return s
}

func (s Snapshot) Triples() []Triple {
	out := make([]Triple, 0, len(s))
	for _, t := range s {
		out = append(out, t)
	}
	return out
}

type Commit struct {
	ID        string    `json:"id" bson:"_id"`
	Branch    string    `json:"branch" bson:"branch"`
	Parents   []string  `json:"parents" bson:"parents"`
	Snapshot  Snapshot  `json:"snapshot" bson:"snapshot"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Branch struct {
	Name      string    `json:"name" bson:"_id"`
	Head      string    `json:"head" bson:"head"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Stash struct {
	ID        string    `json:"id" bson:"_id"`
	Branch    string    `json:"branch" bson:"branch"`
	Snapshot  Snapshot  `json:"snapshot" bson:"snapshot"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func tripleEqual(a, b Triple) bool { return a == b }

// MergeSnapshots three-way merges triple sets. A nil base means the branches
// share no history and every overlapping slot is judged as a both-added case.
func MergeSnapshots(base, ours, theirs Snapshot, opts merge.Options) (Snapshot, []merge.Conflict[Triple], error) {
	if base == nil {
		base = Snapshot{}
	}
	merged, conflicts, err := merge.Maps(base, ours, theirs, tripleEqual, opts)
	if err != nil {
		return nil, conflicts, err
	}
	return merged, nil, nil
}

// CommitGetter is the slice of the repository the ancestry walks need.
type CommitGetter interface {
	GetCommit(ctx context.Context, id string) (*Commit, error)
}

// MergeBase finds the closest common ancestor of two commits by breadth-first
// walk over the parent links: all ancestors of a are collected, then b's
// ancestry is walked outward until it hits one. Empty result means disjoint
// histories.
func MergeBase(ctx context.Context, store CommitGetter, a, b string) (string, error) {
	if a == "" || b == "" {
		return "", nil
	}
	ancestors := map[string]struct{}{}
	queue := []string{a}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, seen := ancestors[id]; seen {
			continue
		}
		ancestors[id] = struct{}{}
		c, err := store.GetCommit(ctx, id)
		if err != nil {
			return "", err
		}
		queue = append(queue, c.Parents...)
	}

	visited := map[string]struct{}{}
	queue = []string{b}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		if _, ok := ancestors[id]; ok {
			return id, nil
		}
		c, err := store.GetCommit(ctx, id)
		if err != nil {
			return "", err
		}
		queue = append(queue, c.Parents...)
	}
	return "", nil
}

// IsAncestor reports whether ancestor is reachable from head.
func IsAncestor(ctx context.Context, store CommitGetter, ancestor, head string) (bool, error) {
	if ancestor == "" || head == "" {
		return false, nil
	}
	visited := map[string]struct{}{}
	queue := []string{head}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == ancestor {
			return true, nil
		}
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		c, err := store.GetCommit(ctx, id)
		if err != nil {
			return false, err
		}
		queue = append(queue, c.Parents...)
	}
	return false, nil
}

// FirstParentLog walks the first-parent chain from head, newest first.
func FirstParentLog(ctx context.Context, store CommitGetter, head string, limit int) ([]*Commit, error) {
	var out []*Commit
	id := head
	for id != "" && (limit <= 0 || len(out) < limit) {
		c, err := store.GetCommit(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		if len(c.Parents) == 0 {
			break
		}
		id = c.Parents[0]
	}
	return out, nil
}
