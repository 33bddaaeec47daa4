// Package lineage expands a taxon ID into the chain of its ancestors
// by following parent pointers up to the root of the taxonomy.
package lineage

import (
	"strings"

	"github.com/gnames/taxlookup/pkg/ent/rank"
)

// RootID is the self-parented taxon that terminates every walk.
// The root itself is never part of a lineage.
const RootID uint32 = 1

// Node is one ancestor level of a lineage.
type Node struct {
	Rank rank.Rank `json:"rank"`
	Name string    `json:"name"`
}

// Lineage lists ancestors from the queried taxon outwards, ending just
// below the root.
type Lineage []Node

// String renders the lineage as 'rank:name' pairs separated by '|'.
func (l Lineage) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.Rank.String() + ":" + v.Name
	}
	return strings.Join(parts, "|")
}

// Tree gives access to the stored taxonomy tree. Every method returns
// ok=false when the taxon has no record.
type Tree interface {
	Parent(id uint32) (parent uint32, ok bool, err error)
	Rank(id uint32) (r rank.Rank, ok bool, err error)
	Name(id uint32) (name string, ok bool, err error)
}

// Walk returns the lineage of the taxon id. The loop checks the current
// ID against RootID before emitting, so a lineage of the root is empty and
// a lineage of a direct child of the root has one node.
// A missing parent, rank or name record, or a taxon visited twice, means
// the index is damaged and results in a CorruptedError with no partial
// lineage.
func Walk(t Tree, id uint32) (Lineage, error) {
	var ids []uint32
	visited := make(map[uint32]struct{})

	for cur := id; cur != RootID; {
		if _, ok := visited[cur]; ok {
			return nil, CycleError(id, cur)
		}
		visited[cur] = struct{}{}
		ids = append(ids, cur)

		parent, ok, err := t.Parent(cur)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, MissingRecordError(id, cur, "parent")
		}
		cur = parent
	}

	res := make(Lineage, 0, len(ids))
	for _, v := range ids {
		r, ok, err := t.Rank(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, MissingRecordError(id, v, "rank")
		}

		name, ok, err := t.Name(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, MissingRecordError(id, v, "name")
		}

		res = append(res, Node{Rank: r, Name: name})
	}

	return res, nil
}
