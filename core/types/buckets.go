package types

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// Bucket is a numeric range used by the price and revenue dropdowns.
// Lower is exclusive, Upper is inclusive; a nil bound is unbounded.
type Bucket struct {
	Key   string       `json:"value"`
	Label string       `json:"label"`
	Lower *apd.Decimal `json:"-"`
	Upper *apd.Decimal `json:"-"`
}

// Contains reports whether v falls in (Lower, Upper]
func (b Bucket) Contains(v *apd.Decimal) bool {
	if v == nil {
		return false
	}
	if b.Lower != nil && v.Cmp(b.Lower) <= 0 {
		return false
	}
	if b.Upper != nil && v.Cmp(b.Upper) > 0 {
		return false
	}
	return true
}

// BucketTable is the single source for both the dropdown labels and the
// comparisons performed by the filter, so the two cannot drift apart.
type BucketTable struct {
	Unit    string   `json:"unit"`
	Buckets []Bucket `json:"buckets"`
}

// NewBucketTable builds len(boundaries)+1 buckets from strictly increasing
// boundaries B0..Bn: "0-B0" (v <= B0), "Bi-Bj" (Bi < v <= Bj) and "Bn+" (v > Bn).
func NewBucketTable(unit string, boundaries ...string) (BucketTable, error) {
	if len(boundaries) == 0 {
		return BucketTable{}, errors.New("at least one bucket boundary is required")
	}

	bounds := make([]*apd.Decimal, len(boundaries))
	for i, raw := range boundaries {
		d, _, err := apd.NewFromString(raw)
		if err != nil {
			return BucketTable{}, errors.Wrapf(err, "invalid bucket boundary %q", raw)
		}
		if d.Form != apd.Finite {
			return BucketTable{}, errors.Errorf("bucket boundary must be finite, got %q", raw)
		}
		if i > 0 && d.Cmp(bounds[i-1]) <= 0 {
			return BucketTable{}, errors.Errorf("bucket boundaries must be strictly increasing, %s does not exceed %s", raw, boundaries[i-1])
		}
		bounds[i] = d
	}

	table := BucketTable{Unit: unit}
	var lower *apd.Decimal
	for _, upper := range bounds {
		table.Buckets = append(table.Buckets, newBucket(unit, lower, upper))
		lower = upper
	}
	table.Buckets = append(table.Buckets, newBucket(unit, lower, nil))

	return table, nil
}

// MustBucketTable panics on invalid boundaries; for package-level defaults
func MustBucketTable(unit string, boundaries ...string) BucketTable {
	table, err := NewBucketTable(unit, boundaries...)
	if err != nil {
		panic(err)
	}
	return table
}

func newBucket(unit string, lower, upper *apd.Decimal) Bucket {
	b := Bucket{Lower: lower, Upper: upper}
	switch {
	case lower == nil:
		b.Key = "0-" + upper.Text('f')
		b.Label = fmt.Sprintf("Up to %s %s", upper.Text('f'), unit)
	case upper == nil:
		b.Key = lower.Text('f') + "+"
		b.Label = fmt.Sprintf("%s+ %s", lower.Text('f'), unit)
	default:
		b.Key = lower.Text('f') + "-" + upper.Text('f')
		b.Label = fmt.Sprintf("%s - %s %s", lower.Text('f'), upper.Text('f'), unit)
	}
	return b
}

// Lookup returns the bucket for key. The "all" sentinel, the empty string and
// unknown keys all report ok=false, meaning no constraint.
func (t BucketTable) Lookup(key string) (Bucket, bool) {
	if key == "" || key == BucketAll {
		return Bucket{}, false
	}
	for _, b := range t.Buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// Keys returns the bucket keys in ascending order, without the sentinel
func (t BucketTable) Keys() []string {
	keys := make([]string, len(t.Buckets))
	for i, b := range t.Buckets {
		keys[i] = b.Key
	}
	return keys
}

// Buckets groups the range tables used by the marketplace filter
type Buckets struct {
	Price   BucketTable `json:"price"`
	Revenue BucketTable `json:"revenue"`
}

const DefaultUnit = "ETH"

var (
	DefaultPriceBoundaries   = []string{"1", "2", "3"}
	DefaultRevenueBoundaries = []string{"0.1", "0.2"}
)

// DefaultBuckets returns the price (1, 2, 3 ETH) and revenue (0.1, 0.2 ETH) tables
func DefaultBuckets() Buckets {
	return Buckets{
		Price:   MustBucketTable(DefaultUnit, DefaultPriceBoundaries...),
		Revenue: MustBucketTable(DefaultUnit, DefaultRevenueBoundaries...),
	}
}

// IsZero reports whether neither table has been configured
func (b Buckets) IsZero() bool {
	return len(b.Price.Buckets) == 0 && len(b.Revenue.Buckets) == 0
}
