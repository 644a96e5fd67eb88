package dossier

import (
	"sort"

	"dossiervault/models"
)

// Reverse-index maintenance. Each index maps an address to the sorted set of
// (owner, dossier id) pairs where that address holds a role. Ordering is
// owner ascending then id ascending; owners are fixed-length dashless hex
// UUIDs, so byte-wise string comparison matches numeric comparison.

// compareRefs returns -1, 0 or 1 ordering a before b.
func compareRefs(a, b models.DossierRef) int {
	if a.Owner != b.Owner {
		if a.Owner < b.Owner {
			return -1
		}
		return 1
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// searchRefs returns the insertion point for ref in the sorted slice, and
// whether an exact match already sits there.
func searchRefs(refs []models.DossierRef, ref models.DossierRef) (int, bool) {
	i := sort.Search(len(refs), func(n int) bool {
		return compareRefs(refs[n], ref) >= 0
	})
	return i, i < len(refs) && compareRefs(refs[i], ref) == 0
}

// insertRef adds ref to index[addr] at its sorted position. Callers guarantee
// no duplicate is inserted (the preceding membership checks on the
// authoritative per-dossier list reject duplicates first); the index itself
// stays silent on one.
func insertRef(index map[string][]models.DossierRef, addr string, ref models.DossierRef) {
	refs := index[addr]
	i, found := searchRefs(refs, ref)
	if found {
		return
	}
	refs = append(refs, models.DossierRef{})
	copy(refs[i+1:], refs[i:])
	refs[i] = ref
	index[addr] = refs
}

// removeRef deletes the exact (owner, id) entry from index[addr]. It reports
// whether the entry was present; absence is non-fatal bookkeeping, since the
// primary removal already validated membership.
func removeRef(index map[string][]models.DossierRef, addr string, owner string, id uint64) bool {
	refs := index[addr]
	i, found := searchRefs(refs, models.DossierRef{Owner: owner, ID: id})
	if !found {
		return false
	}
	copy(refs[i:], refs[i+1:])
	refs = refs[:len(refs)-1]
	if len(refs) == 0 {
		delete(index, addr)
	} else {
		index[addr] = refs
	}
	return true
}

// queryRefs returns a copy of the sorted refs for addr.
func queryRefs(index map[string][]models.DossierRef, addr string) []models.DossierRef {
	refs := index[addr]
	out := make([]models.DossierRef, len(refs))
	copy(out, refs)
	return out
}
