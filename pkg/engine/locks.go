package engine

import (
	"sort"
	"sync"
)

// class is an entity class guarded by one lock. Locks are always acquired in
// ascending class order.
type class int

const (
	classRegistry class = iota
	classNews
	classCampaigns
	classVaults
	classPool
	classAccounts
	numClasses
)

type grant struct {
	class class
	write bool
}

func read(c class) grant  { return grant{class: c} }
func write(c class) grant { return grant{class: c, write: true} }

type lockSet struct {
	mu [numClasses]sync.RWMutex
}

// acquire locks every granted class and returns the matching release func.
// A class granted twice is locked once, for writing if either grant writes.
func (l *lockSet) acquire(grants ...grant) func() {
	merged := map[class]bool{}
	for _, g := range grants {
		merged[g.class] = merged[g.class] || g.write
	}
	ordered := make([]grant, 0, len(merged))
	for c, w := range merged {
		ordered = append(ordered, grant{class: c, write: w})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].class < ordered[j].class })

	for _, g := range ordered {
		if g.write {
			l.mu[g.class].Lock()
		} else {
			l.mu[g.class].RLock()
		}
	}
	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			g := ordered[i]
			if g.write {
				l.mu[g.class].Unlock()
			} else {
				l.mu[g.class].RUnlock()
			}
		}
	}
}
