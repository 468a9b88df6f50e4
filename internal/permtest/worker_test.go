package permtest

import (
	"context"
	"errors"
	"math/big"
	"testing"
)

func fullSlice(design []uint8, nperms int64) Slice {
	return Slice{Design: design, Start: big.NewInt(0), End: big.NewInt(nperms)}
}

func TestRunSliceTwoTailedFullSpace(t *testing.T) {
	// obs = [1 2 3 4], design [0 0 1 1], observed T = -2. Of the 24
	// permutations, the labelings selecting {1,2} or {3,4} for group A reach
	// |stat| >= 2, four orderings each, so overT = 8. The maximal permuted
	// statistic is +2.
	obs := []float64{1, 2, 3, 4}
	design := buildDesign(2, 2)

	pr, err := runSlice(context.Background(), fullSlice(design, 24), obs, -2, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pr.overT != 8 {
		t.Errorf("expected 8 extreme permutations, got %d", pr.overT)
	}
	if pr.maxT != 2 {
		t.Errorf("expected max statistic 2, got %v", pr.maxT)
	}
}

func TestRunSliceOneTailedFullSpace(t *testing.T) {
	// One-sided rule stat >= -2: every labeling of [1 2 3 4] yields a
	// statistic in [-2, 2], so all 24 permutations qualify.
	obs := []float64{1, 2, 3, 4}
	design := buildDesign(2, 2)

	pr, err := runSlice(context.Background(), fullSlice(design, 24), obs, -2, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pr.overT != 24 {
		t.Errorf("expected all 24 permutations to qualify, got %d", pr.overT)
	}
}

func TestRunSliceMaxStatisticFloorsAtZero(t *testing.T) {
	// Rank 0 is the identity permutation, whose statistic is the observed -2.
	// A slice seeing only negative statistics reports zero, not the true
	// negative maximum.
	obs := []float64{1, 2, 3, 4}
	design := buildDesign(2, 2)
	sl := Slice{Design: design, Start: big.NewInt(0), End: big.NewInt(1)}

	pr, err := runSlice(context.Background(), sl, obs, -2, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pr.maxT != 0 {
		t.Errorf("expected floored max statistic 0, got %v", pr.maxT)
	}
	if pr.overT != 1 {
		t.Errorf("expected the identity permutation to qualify, got %d", pr.overT)
	}
}

func TestRunSliceEmptyRange(t *testing.T) {
	obs := []float64{1, 2, 3, 4}
	design := buildDesign(2, 2)
	sl := Slice{Design: design, Start: big.NewInt(5), End: big.NewInt(5)}

	var final float64
	pr, err := runSlice(context.Background(), sl, obs, -2, true, func(v float64) { final = v })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pr.overT != 0 || pr.maxT != 0 {
		t.Errorf("expected zero partial result, got %+v", pr)
	}
	if final != 1.0 {
		t.Errorf("expected terminal progress sample 1.0, got %v", final)
	}
}

func TestRunSlicePartialRangesSumToFullSpace(t *testing.T) {
	// Splitting the space at an arbitrary rank must reproduce the full-space
	// counts, since each worker evaluates its range independently.
	obs := []float64{1, 2, 3, 4}
	design := buildDesign(2, 2)

	full, err := runSlice(context.Background(), fullSlice(design, 24), obs, -2, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lo := Slice{Design: design, Start: big.NewInt(0), End: big.NewInt(11)}
	hi := Slice{Design: design, Start: big.NewInt(11), End: big.NewInt(24)}
	prLo, err := runSlice(context.Background(), lo, obs, -2, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prHi, err := runSlice(context.Background(), hi, obs, -2, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prLo.overT+prHi.overT != full.overT {
		t.Errorf("split counts %d+%d do not match full count %d",
			prLo.overT, prHi.overT, full.overT)
	}
	maxSplit := prLo.maxT
	if prHi.maxT > maxSplit {
		maxSplit = prHi.maxT
	}
	if maxSplit != full.maxT {
		t.Errorf("split max %v does not match full max %v", maxSplit, full.maxT)
	}
}

func TestRunSliceCancellation(t *testing.T) {
	// Eight observations give 40320 permutations, enough to cross the
	// cancellation poll interval. A pre-canceled context must abort the
	// slice with the context error and no partial result.
	obs := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	design := buildDesign(4, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, err := runSlice(ctx, fullSlice(design, 40320), obs, -4, true, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if pr.overT != 0 || pr.maxT != 0 {
		t.Errorf("expected zeroed partial result after cancellation, got %+v", pr)
	}
}

func TestRunSliceInvalidStart(t *testing.T) {
	obs := []float64{1, 2, 3, 4}
	design := buildDesign(2, 2)
	sl := Slice{Design: design, Start: big.NewInt(-1), End: big.NewInt(5)}

	if _, err := runSlice(context.Background(), sl, obs, -2, true, nil); err == nil {
		t.Fatal("expected error for negative start rank")
	}
}
