// Package resolver orders library members so dependencies precede dependents.
//
// Ordering is a depth-first topological sort. Each member is visited in
// input order; before a member is placed, every declared dependency that
// resolves to another member of the same collection is placed first.
// Members with no dependency relationship keep their input order.
//
// A member that is still being visited when it is reached again closes a
// cycle. The re-entry is skipped, so the cycle is broken at the member
// that was seen first and every member is still placed exactly once.
// References that match no member are ignored here; they stay in the
// library's mention set and are reported by the assembler.
package resolver

import (
	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	placed
)

// Order returns members in dependency order.
// Every distinct normalized path appears exactly once; for duplicates the
// first occurrence wins.
func Order(members []clientlibs.FileRecord, norm clientlibs.Normalizer) []clientlibs.FileRecord {
	index := make(map[string]int, len(members))
	for i, rec := range members {
		key := norm.RecordKey(rec)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	state := make(map[string]visitState, len(index))
	ordered := make([]clientlibs.FileRecord, 0, len(index))

	var visit func(i int)
	visit = func(i int) {
		rec := members[i]
		key := norm.RecordKey(rec)
		if state[key] != unvisited {
			return
		}
		state[key] = visiting

		for _, dep := range rec.DependsOn {
			j, ok := index[norm.Key(rec.AssetType, dep)]
			if !ok {
				continue
			}
			visit(j)
		}

		state[key] = placed
		ordered = append(ordered, rec)
	}

	for i := range members {
		visit(i)
	}
	return ordered
}

// Matched returns the subset of refs that resolve to a member, in the
// order the refs were given.
func Matched(members []clientlibs.FileRecord, refs []string, norm clientlibs.Normalizer) []string {
	if len(members) == 0 || len(refs) == 0 {
		return nil
	}
	keys := make(map[string]bool, len(members))
	t := members[0].AssetType
	for _, rec := range members {
		keys[norm.RecordKey(rec)] = true
	}

	var matched []string
	for _, ref := range refs {
		if keys[norm.Key(t, ref)] {
			matched = append(matched, ref)
		}
	}
	return matched
}
