// Package extension migrates typed extension payloads (geo/legal/web
// sidecars on a canonical document) between schema versions. Migrations are
// registered as directed steps; a request from one version to another is
// served by the shortest step path, found by breadth-first search.
package extension

import (
	"errors"
	"fmt"
	"strings"
)

// Extension types known to the pipeline.
const (
	TypeGeo   = "geo"
	TypeLegal = "legal"
	TypeWeb   = "web"
)

// Payload is the raw extension document. Transforms receive a copy and must
// not retain it.
type Payload map[string]any

type Transform func(p Payload) (Payload, error)

// Step is a single registered migration edge.
type Step struct {
	Type  string
	From  string
	To    string
	Apply Transform
}

// PathError reports that no migration chain connects two schema versions.
type PathError struct {
	Type string
	From string
	To   string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("no migration path for extension %q from %s to %s", e.Type, e.From, e.To)
}

var ErrUnknownType = errors.New("unknown extension type")

// SchemaVersion formats a qualified version like "geo@v2".
func SchemaVersion(extType, version string) string {
	return extType + "@" + version
}

// ParseSchemaVersion splits "geo@v2" into type and version.
func ParseSchemaVersion(s string) (extType, version string, err error) {
	extType, version, ok := strings.Cut(s, "@")
	if !ok || extType == "" || version == "" {
		return "", "", fmt.Errorf("malformed schema version %q", s)
	}
	return extType, version, nil
}

type Registry struct {
	// adjacency per type: from-version -> outgoing steps
	steps map[string]map[string][]Step
	// current (latest) version per type
	current map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		steps:   map[string]map[string][]Step{},
		current: map[string]string{},
	}
}

// Register adds a migration step. A second step with the same type and
// from/to pair is rejected.
func (r *Registry) Register(s Step) error {
	if s.Type == "" || s.From == "" || s.To == "" || s.Apply == nil {
		return errors.New("migration step requires type, from, to and a transform")
	}
	if s.From == s.To {
		return fmt.Errorf("migration step for %q maps %s onto itself", s.Type, s.From)
	}
	byFrom, ok := r.steps[s.Type]
	if !ok {
		byFrom = map[string][]Step{}
		r.steps[s.Type] = byFrom
	}
	for _, existing := range byFrom[s.From] {
		if existing.To == s.To {
			return fmt.Errorf("duplicate migration step %s %s->%s", s.Type, s.From, s.To)
		}
	}
	byFrom[s.From] = append(byFrom[s.From], s)
	return nil
}

// SetCurrent marks the version new payloads of a type are stored at.
func (r *Registry) SetCurrent(extType, version string) {
	r.current[extType] = version
}

// Current returns the storage version for a type.
func (r *Registry) Current(extType string) (string, error) {
	v, ok := r.current[extType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, extType)
	}
	return v, nil
}

// Path resolves the shortest chain of steps from one version to another.
// from == to yields an empty chain.
func (r *Registry) Path(extType, from, to string) ([]Step, error) {
	if from == to {
		return nil, nil
	}
	byFrom, ok := r.steps[extType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, extType)
	}

	type queued struct {
		version string
		path    []Step
	}
	visited := map[string]struct{}{from: {}}
	queue := []queued{{version: from}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, step := range byFrom[cur.version] {
			if _, seen := visited[step.To]; seen {
				continue
			}
			path := make([]Step, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, step)
			if step.To == to {
				return path, nil
			}
			visited[step.To] = struct{}{}
			queue = append(queue, queued{version: step.To, path: path})
		}
	}
	return nil, &PathError{Type: extType, From: from, To: to}
}

// Migrate runs a payload along the resolved path and returns the migrated
// payload with the version it landed on.
func (r *Registry) Migrate(extType, from, to string, p Payload) (Payload, string, error) {
	path, err := r.Path(extType, from, to)
	if err != nil {
		return nil, "", err
	}
	out := p.clone()
	for _, step := range path {
		out, err = step.Apply(out)
		if err != nil {
			return nil, "", fmt.Errorf("migration %s %s->%s: %w", extType, step.From, step.To, err)
		}
	}
	return out, to, nil
}

// MigrateToCurrent brings a payload to the type's storage version.
func (r *Registry) MigrateToCurrent(extType, from string, p Payload) (Payload, string, error) {
	to, err := r.Current(extType)
	if err != nil {
		return nil, "", err
	}
	return r.Migrate(extType, from, to, p)
}

func (p Payload) clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
