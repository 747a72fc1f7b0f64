package retention

import (
	"sort"
	"time"
)

// timeStamps is used to satisfy a sort.Interface.
type timeStamps []time.Time

// Len is part of sort.Interface.
func (t timeStamps) Len() int {
	return len(t)
}

// Swap is part of sort.Interface.
func (t timeStamps) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
}

// Less is part of the sort.Sort interface.
// We always want the oldest time stamps first.
func (t timeStamps) Less(i, j int) bool {
	return t[i].Before(t[j])
}

// Our timeStamps interface must satisfy a sort.Interface.
var _ sort.Interface = (timeStamps)(nil)
