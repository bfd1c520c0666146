package graph

import (
	"github.com/epochdb/epoch/pkg/storage"
	"github.com/epochdb/epoch/pkg/types"
)

// Version is one point in an attribute's history: the snapshot time its
// value took effect, and the attribute itself as it stood at that time.
type Version struct {
	Time int64
	Attr *types.Attribute
}

// EvolutionOf walks attrName on entity id backwards from the snapshot at
// time at, through history's earlier snapshots via each version's PrevTS
// pointer, and returns every version reached, oldest first. A version
// missing at its recorded time (the entity or attribute no longer exists
// there) simply ends the walk rather than failing, per spec.
func EvolutionOf(history []*storage.Snapshot, at int64, id, attrName string) []Version {
	var versions []Version
	t := at
	for t != types.NoTimestamp {
		if t < 0 || int(t) >= len(history) {
			break
		}
		attr, ok := history[t].EntityAttr(id, attrName)
		if !ok {
			break
		}
		versions = append(versions, Version{Time: attr.CurrTS, Attr: attr})
		t = attr.PrevTS
	}
	for i, j := 0, len(versions)-1; i < j; i, j = i+1, j-1 {
		versions[i], versions[j] = versions[j], versions[i]
	}
	return versions
}

// First returns the earliest version, or nil if there are none.
func First(versions []Version) *Version {
	if len(versions) == 0 {
		return nil
	}
	return &versions[0]
}

// Last returns the most recent version, or nil if there are none.
func Last(versions []Version) *Version {
	if len(versions) == 0 {
		return nil
	}
	return &versions[len(versions)-1]
}

// Count returns the number of versions an attribute has passed through.
func Count(versions []Version) int {
	return len(versions)
}
