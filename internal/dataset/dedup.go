package dataset

import (
	"math/rand/v2"

	"github.com/evcraddock/parcelprep/internal/table"
)

// DeduplicateByKey keeps one row per distinct value of key. Rows whose key
// appears once are kept as-is, in input order. For keys appearing more than
// once the duplicated rows are shuffled with a source seeded by seed and the
// first row of each key in shuffled order is kept, after the unique rows.
// The result depends only on seed and input order.
func DeduplicateByKey(t *table.Table, key string, seed uint64) (*table.Table, error) {
	keys, err := t.Column(key)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		counts[k.Key()]++
	}

	var single, multi []int
	for i, k := range keys {
		if counts[k.Key()] == 1 {
			single = append(single, i)
		} else {
			multi = append(multi, i)
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(multi), func(i, j int) {
		multi[i], multi[j] = multi[j], multi[i]
	})

	out, err := table.New(t.Columns()...)
	if err != nil {
		return nil, err
	}
	for _, i := range single {
		if err := out.Append(t.Row(i)...); err != nil {
			return nil, err
		}
	}

	chosen := map[string]bool{}
	for _, i := range multi {
		k := keys[i].Key()
		if chosen[k] {
			continue
		}
		chosen[k] = true
		if err := out.Append(t.Row(i)...); err != nil {
			return nil, err
		}
	}

	return out, nil
}
