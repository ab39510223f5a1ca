// Package catalog turns course and prerequisite records into a [dag.DAG].
//
// Course identifiers have the shape <Department><Digits>, e.g. "S307". The
// department is the first character and the numeric band is the first digit
// times 100. Prerequisite edges point from the requisite to the course that
// requires it.
package catalog

import (
	"strings"
	"unicode"

	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/errors"
)

// Course is a parsed course identifier.
type Course struct {
	ID         string
	Department string
	Band       int // 100, 200, ... or 0 when the id carries no digit
}

// ParseID splits a course identifier into department and band. It never
// fails; identifiers that do not follow the usual shape get an empty
// department or a zero band.
func ParseID(id string) Course {
	c := Course{ID: id}
	for i, r := range id {
		if i == 0 {
			c.Department = strings.ToUpper(string(r))
			continue
		}
		if unicode.IsDigit(r) {
			c.Band = int(r-'0') * 100
			break
		}
	}
	return c
}

// Requisite is one prerequisite record: Requisite must be taken before Course.
type Requisite struct {
	Course    string
	Requisite string
	Primary   bool
}

// MissingPolicy decides what happens to a requisite that references an
// identifier absent from the course list.
type MissingPolicy int

const (
	// MissingReject fails the build with INVALID_GRAPH_INPUT.
	MissingReject MissingPolicy = iota
	// MissingImplicit inserts the identifier as an implicit node.
	MissingImplicit
	// MissingDrop skips the requisite.
	MissingDrop
)

var policyNames = map[MissingPolicy]string{
	MissingReject:   "reject",
	MissingImplicit: "implicit",
	MissingDrop:     "drop",
}

// String returns the policy name used in configuration files.
func (p MissingPolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParseMissingPolicy parses "reject", "implicit" or "drop". The empty string
// means reject.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	if s == "" {
		return MissingReject, nil
	}
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return MissingReject, errors.New(errors.ErrCodeInvalidConfig,
		"unknown missing-requisite policy %q (want reject, implicit or drop)", s)
}

// EdgeFilter reports whether a requisite becomes an edge.
type EdgeFilter func(Requisite) bool

// PrimaryOnly keeps only primary requisites.
func PrimaryOnly(r Requisite) bool { return r.Primary }

// AllEdges keeps every requisite.
func AllEdges(Requisite) bool { return true }

// BuildOptions configures [Build].
type BuildOptions struct {
	// EdgeFilter drops requisites before the graph is built. Nil keeps all.
	EdgeFilter EdgeFilter
	// Missing is the policy for requisites naming unknown courses.
	Missing MissingPolicy
}

// Build creates the prerequisite graph.
//
// Courses become regular nodes in the given order; repeated identifiers are
// collapsed onto the first. Each requisite that passes the filter becomes an
// edge Requisite → Course. Repeated pairs collapse into one edge whose
// [dag.MetaPrimary] flag is set if any of them was primary. A course listed
// as its own requisite is skipped and counted in the graph's
// [dag.MetaSelfLoops] metadata.
//
// Endpoints absent from the course list are handled by opts.Missing. Under
// [MissingImplicit] they are appended after the declared courses in the
// order they are first referenced.
func Build(courses []string, reqs []Requisite, opts BuildOptions) (*dag.DAG, error) {
	g := dag.New(nil)
	for _, id := range courses {
		if err := errors.ValidateCourseID(id); err != nil {
			return nil, err
		}
		if _, ok := g.Node(id); ok {
			continue
		}
		if err := g.AddNode(courseNode(id, dag.NodeKindRegular)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraphInput, err, "add course %q", id)
		}
	}

	selfLoops := 0
	for _, r := range reqs {
		if opts.EdgeFilter != nil && !opts.EdgeFilter(r) {
			continue
		}
		if err := errors.ValidateCourseID(r.Course); err != nil {
			return nil, err
		}
		if err := errors.ValidateCourseID(r.Requisite); err != nil {
			return nil, err
		}
		if r.Course == r.Requisite {
			selfLoops++
			continue
		}

		keep, err := resolve(g, r, opts.Missing)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}

		if e := g.Edge(r.Requisite, r.Course); e != nil {
			if r.Primary {
				e.Meta[dag.MetaPrimary] = true
			}
			continue
		}
		if err := g.AddEdge(dag.Edge{
			From: r.Requisite,
			To:   r.Course,
			Meta: dag.Metadata{dag.MetaPrimary: r.Primary},
		}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraphInput, err,
				"add requisite %s → %s", r.Requisite, r.Course)
		}
	}

	if selfLoops > 0 {
		g.Meta()[dag.MetaSelfLoops] = selfLoops
	}
	return g, nil
}

// resolve applies the missing-requisite policy to both endpoints of r and
// reports whether the edge should be added.
func resolve(g *dag.DAG, r Requisite, policy MissingPolicy) (bool, error) {
	for _, id := range []string{r.Requisite, r.Course} {
		if _, ok := g.Node(id); ok {
			continue
		}
		switch policy {
		case MissingImplicit:
			if err := g.AddNode(courseNode(id, dag.NodeKindImplicit)); err != nil {
				return false, errors.Wrap(errors.ErrCodeInvalidGraphInput, err, "add implicit course %q", id)
			}
		case MissingDrop:
			return false, nil
		default:
			return false, errors.New(errors.ErrCodeInvalidGraphInput,
				"requisite %s → %s references unknown course %q", r.Requisite, r.Course, id)
		}
	}
	return true, nil
}

func courseNode(id string, kind dag.NodeKind) dag.Node {
	c := ParseID(id)
	return dag.Node{
		ID:   id,
		Kind: kind,
		Meta: dag.Metadata{
			dag.MetaDepartment: c.Department,
			dag.MetaBand:       c.Band,
		},
	}
}
