package equipment

import (
	"maps"
	"slices"
)

// stash adds one unequipped copy of name.
func stash(counts *map[string]int, name string) {
	if *counts == nil {
		*counts = make(map[string]int)
	}
	(*counts)[name]++
}

// take removes one unequipped copy of name, reporting whether one was there.
func take(counts map[string]int, name string) bool {
	if counts[name] <= 0 {
		return false
	}
	counts[name]--
	if counts[name] == 0 {
		delete(counts, name)
	}
	return true
}

// insertSorted adds name to a sorted set.
func insertSorted(set []string, name string) []string {
	index, found := slices.BinarySearch(set, name)
	if found {
		return set
	}
	return slices.Insert(set, index, name)
}

// removeSorted drops name from a sorted set, returning nil once empty.
func removeSorted(set []string, name string) []string {
	index, found := slices.BinarySearch(set, name)
	if !found {
		return set
	}
	set = slices.Delete(set, index, index+1)
	if len(set) == 0 {
		return nil
	}
	return set
}

func cloneCounts(counts map[string]int) map[string]int {
	return maps.Clone(counts)
}
