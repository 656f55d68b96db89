// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

package basket

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func tx(id int64, items ...string) Transaction {
	set := make([]Item, len(items))
	for i, s := range items {
		set[i] = StringItem(s)
	}
	return NewTransaction(IntItem(id), set...)
}

func set(items ...string) Itemset {
	out := make([]Item, len(items))
	for i, s := range items {
		out[i] = StringItem(s)
	}
	return NewItemset(out...)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// scenarioTransactions is {T1:{A,B}, T2:{A,B,C}, T3:{A}}.
func scenarioTransactions() []Transaction {
	return []Transaction{
		tx(1, "A", "B"),
		tx(2, "A", "B", "C"),
		tx(3, "A"),
	}
}

func TestMine_Scenario(t *testing.T) {
	table, err := Mine(context.Background(), scenarioTransactions(), MineOptions{MinSupport: 0.5, PruneSubsets: true})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}

	if table.Levels() != 2 {
		t.Fatalf("Levels() = %d, want 2", table.Levels())
	}

	level1 := table.Level(1)
	if len(level1) != 2 {
		t.Fatalf("len(Level(1)) = %d, want 2", len(level1))
	}
	if !level1[0].Items.Equal(set("A")) || !approx(level1[0].Support, 1.0) {
		t.Errorf("Level(1)[0] = %v (%v), want {A} (1.0)", level1[0].Items, level1[0].Support)
	}
	if !level1[1].Items.Equal(set("B")) || !approx(level1[1].Support, 2.0/3.0) {
		t.Errorf("Level(1)[1] = %v (%v), want {B} (0.667)", level1[1].Items, level1[1].Support)
	}

	level2 := table.Level(2)
	if len(level2) != 1 || !level2[0].Items.Equal(set("A", "B")) {
		t.Fatalf("Level(2) = %v, want [{A, B}]", level2)
	}
	if !approx(level2[0].Support, 2.0/3.0) {
		t.Errorf("support({A,B}) = %v, want 0.667", level2[0].Support)
	}

	if table.Level(3) != nil {
		t.Errorf("Level(3) = %v, want nil", table.Level(3))
	}
	if got := table.Support(set("A", "B", "C")); !approx(got, 1.0/3.0) {
		t.Errorf("Support({A,B,C}) = %v, want 0.333", got)
	}
}

func TestMine_EmptyInput(t *testing.T) {
	table, err := Mine(context.Background(), nil, DefaultMineOptions())
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if !table.Empty() || table.Len() != 0 || table.TotalTransactions() != 0 {
		t.Errorf("Mine(nil) = %d itemsets over %d transactions, want empty", table.Len(), table.TotalTransactions())
	}
}

func TestMine_SingleItem(t *testing.T) {
	table, err := Mine(context.Background(), []Transaction{tx(1, "A")}, MineOptions{MinSupport: 0.1})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if table.Levels() != 1 || table.Len() != 1 {
		t.Fatalf("Mine() = %d levels, %d itemsets, want 1 and 1", table.Levels(), table.Len())
	}
	if got := table.Level(1)[0].Support; got != 1.0 {
		t.Errorf("support = %v, want 1.0", got)
	}
}

func TestMine_InvalidMinSupport(t *testing.T) {
	for _, v := range []float64{0, -0.1, 1.01, math.NaN()} {
		_, err := Mine(context.Background(), scenarioTransactions(), MineOptions{MinSupport: v})
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Mine(min_support=%v) error = %v, want ErrInvalidParameter", v, err)
		}
	}
}

func TestMine_MinSupportOne(t *testing.T) {
	txs := []Transaction{
		tx(1, "A", "B", "C"),
		tx(2, "A", "B"),
		tx(3, "A", "B", "D"),
	}
	table, err := Mine(context.Background(), txs, MineOptions{MinSupport: 1})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	for _, fi := range table.All() {
		for _, tr := range txs {
			if !tr.Items.ContainsAll(fi.Items) {
				t.Errorf("itemset %v missing from transaction %v", fi.Items, tr.ID)
			}
		}
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3 ({A}, {B}, {A,B})", table.Len())
	}
}

func TestMine_MaxLength(t *testing.T) {
	txs := []Transaction{tx(1, "A", "B", "C"), tx(2, "A", "B", "C")}
	table, err := Mine(context.Background(), txs, MineOptions{MinSupport: 0.5, MaxLength: 2})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if table.Levels() != 2 {
		t.Errorf("Levels() = %d, want 2", table.Levels())
	}
}

func TestMine_DuplicateItemsCollapse(t *testing.T) {
	txs := []Transaction{
		{ID: IntItem(1), Items: Itemset{StringItem("A"), StringItem("A"), StringItem("B")}},
		{ID: IntItem(2), Items: Itemset{StringItem("B")}},
	}
	table, err := Mine(context.Background(), txs, MineOptions{MinSupport: 0.5})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if got := table.Count(set("A")); got != 1 {
		t.Errorf("Count({A}) = %d, want 1", got)
	}
	if len(txs[0].Items) != 3 {
		t.Errorf("caller transaction modified: %v", txs[0].Items)
	}
}

func TestMine_PruneStats(t *testing.T) {
	// {A,B} and {A,C} are frequent but {B,C} never occurs, so {A,B,C}
	// is pruned before counting.
	txs := []Transaction{
		tx(1, "A", "B"), tx(2, "A", "B"),
		tx(3, "A", "C"), tx(4, "A", "C"),
		tx(5, "B"), tx(6, "C"),
	}

	pruned, err := Mine(context.Background(), txs, MineOptions{MinSupport: 0.3, PruneSubsets: true})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	stats := pruned.Stats()
	if len(stats) != 3 {
		t.Fatalf("len(Stats()) = %d, want 3", len(stats))
	}
	if got := stats[2]; got.Candidates != 1 || got.Pruned != 1 || got.Frequent != 0 {
		t.Errorf("Stats()[2] = %+v, want 1 candidate, 1 pruned, 0 frequent", got)
	}

	unpruned, err := Mine(context.Background(), txs, MineOptions{MinSupport: 0.3})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if !reflect.DeepEqual(pruned.All(), unpruned.All()) {
		t.Errorf("pruned table %v differs from unpruned %v", pruned.All(), unpruned.All())
	}
}

func TestMine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Mine(ctx, scenarioTransactions(), MineOptions{MinSupport: 0.1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Mine() error = %v, want context.Canceled", err)
	}
}

// randomTransactions draws baskets over a small item universe so that every
// subset can be checked exhaustively.
func randomTransactions(seed int64, n, universe int) []Transaction {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic test data
	txs := make([]Transaction, n)
	for i := range txs {
		var items []Item
		for j := 0; j < universe; j++ {
			if rng.Intn(3) == 0 {
				items = append(items, IntItem(int64(j)))
			}
		}
		txs[i] = NewTransaction(IntItem(int64(i)), items...)
	}
	return txs
}

func TestMine_MatchesBruteForce(t *testing.T) {
	const universe = 7
	for _, seed := range []int64{1, 2, 3} {
		txs := randomTransactions(seed, 40, universe)
		for _, minSup := range []float64{0.05, 0.15, 0.3} {
			for _, prune := range []bool{true, false} {
				table, err := Mine(context.Background(), txs, MineOptions{MinSupport: minSup, PruneSubsets: prune})
				if err != nil {
					t.Fatalf("Mine() error = %v", err)
				}

				want := 0
				for mask := 1; mask < 1<<universe; mask++ {
					var items []Item
					for j := 0; j < universe; j++ {
						if mask&(1<<j) != 0 {
							items = append(items, IntItem(int64(j)))
						}
					}
					candidate := NewItemset(items...)
					frequent := Support(txs, candidate) >= minSup
					if frequent {
						want++
					}
					if frequent != table.Contains(candidate) {
						t.Errorf("seed %d min_support %v prune %v: %v frequent=%v, table says %v",
							seed, minSup, prune, candidate, frequent, table.Contains(candidate))
					}
				}
				if table.Len() != want {
					t.Errorf("seed %d min_support %v: Len() = %d, want %d", seed, minSup, table.Len(), want)
				}
			}
		}
	}
}

func TestMine_Monotonicity(t *testing.T) {
	txs := randomTransactions(11, 60, 8)
	table, err := Mine(context.Background(), txs, MineOptions{MinSupport: 0.05, PruneSubsets: true})
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}

	for _, fi := range table.All() {
		for i := range fi.Items {
			sub := fi.Items.Without(Itemset{fi.Items[i]})
			if len(sub) == 0 {
				continue
			}
			if table.Support(sub) < fi.Support {
				t.Errorf("support(%v) = %v < support(%v) = %v", sub, table.Support(sub), fi.Items, fi.Support)
			}
			if !table.Contains(sub) {
				t.Errorf("subset %v of frequent %v is not in the table", sub, fi.Items)
			}
		}
	}
}

func TestMine_WorkerCountIndependent(t *testing.T) {
	txs := randomTransactions(5, 200, 10)
	var want []FrequentItemset
	for _, workers := range []int{1, 2, 3, 8, 64} {
		table, err := Mine(context.Background(), txs, MineOptions{MinSupport: 0.05, Workers: workers, PruneSubsets: true})
		if err != nil {
			t.Fatalf("Mine(workers=%d) error = %v", workers, err)
		}
		got := table.All()
		if want == nil {
			want = got
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Mine(workers=%d) differs from workers=1", workers)
		}
	}
}

func TestMine_Idempotent(t *testing.T) {
	txs := randomTransactions(9, 80, 9)
	opts := MineOptions{MinSupport: 0.1, PruneSubsets: true}

	first, err := Mine(context.Background(), txs, opts)
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	second, err := Mine(context.Background(), txs, opts)
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	if !reflect.DeepEqual(first.All(), second.All()) {
		t.Error("two runs over the same input produced different tables")
	}
}

func TestGenerateCandidates_Join(t *testing.T) {
	prev := []FrequentItemset{
		{Items: set("A", "B")},
		{Items: set("A", "C")},
		{Items: set("A", "D")},
		{Items: set("B", "C")},
		{Items: set("C", "D")},
	}

	got := generateCandidates(prev)
	want := []Itemset{set("A", "B", "C"), set("A", "B", "D"), set("A", "C", "D")}
	if len(got) != len(want) {
		t.Fatalf("generateCandidates() = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("candidate[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
