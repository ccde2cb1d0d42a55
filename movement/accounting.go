package movement

import (
	"fmt"
	"strings"

	"github.com/oomph-ac/survivalfly/utils"
)

const (
	accountingBuckets        = 3
	accountingBucketCapacity = 3
)

type accountingBucket struct {
	count int
	score float64
}

// Accounting keeps the vertical deltas of the current airborne phase in three rolling buckets of
// three deltas each. Bucket 0 is the one being filled.
type Accounting struct {
	buckets *utils.CircularQueue[*accountingBucket]
}

// NewAccounting ...
func NewAccounting() *Accounting {
	return &Accounting{buckets: utils.NewCircularQueue(accountingBuckets, func() *accountingBucket {
		return &accountingBucket{}
	})}
}

// Add adds a delta to the newest bucket, rolling the buckets over first if it is full.
func (a *Accounting) Add(delta float64) {
	newest, _ := a.buckets.Newest()
	if newest.count >= accountingBucketCapacity {
		newest = &accountingBucket{}
		_ = a.buckets.Append(newest)
	}
	newest.count++
	newest.score += delta
}

// Bucket returns the amount of deltas and their sum in the bucket at index, 0 being the newest.
func (a *Accounting) Bucket(index int) (count int, score float64) {
	b, err := a.buckets.Get(a.buckets.Len() - 1 - index)
	if err != nil {
		return 0, 0
	}
	return b.count, b.score
}

// Count returns the total amount of deltas held.
func (a *Accounting) Count() (n int) {
	for b := range a.buckets.Iter() {
		n += b.count
	}
	return n
}

// Clear empties all buckets.
func (a *Accounting) Clear() {
	for b := range a.buckets.Iter() {
		b.count, b.score = 0, 0
	}
}

// String ...
func (a *Accounting) String() string {
	parts := make([]string, 0, accountingBuckets)
	for i := range accountingBuckets {
		count, score := a.Bucket(i)
		parts = append(parts, fmt.Sprintf("%d/%.3f", count, score))
	}
	return strings.Join(parts, " ")
}
