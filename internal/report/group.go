package report

import "tally/internal/core"

// Bucket holds the transactions of one category, in the order the
// caller supplied them (typically the sort engine's output).
type Bucket struct {
	Category     string
	Transactions []core.Transaction
}

// GroupByCategory partitions txs into per-category buckets. The
// partition is total and disjoint: every transaction lands in exactly
// the bucket named by its own category, and empty buckets never appear.
// Bucket order follows the first appearance of each category in txs,
// which keeps grouped display deterministic.
func GroupByCategory(txs []core.Transaction) []Bucket {
	index := make(map[string]int, len(txs))
	var buckets []Bucket
	for _, t := range txs {
		i, ok := index[t.Category]
		if !ok {
			i = len(buckets)
			index[t.Category] = i
			buckets = append(buckets, Bucket{Category: t.Category})
		}
		buckets[i].Transactions = append(buckets[i].Transactions, t)
	}
	return buckets
}
