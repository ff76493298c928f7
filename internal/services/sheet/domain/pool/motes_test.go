package pool

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"
)

var essenceThree = Capacity{Peripheral: 47, Personal: 19}

func TestSpendOverflowsIntoOtherPool(t *testing.T) {
	motes := Full(Capacity{Peripheral: 5, Personal: 10})
	if err := motes.CheckSpend(8, Peripheral); err != nil {
		t.Fatalf("check spend: %v", err)
	}
	if err := motes.Spend(8, Peripheral); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if motes.Peripheral != (SubPool{Available: 0, Spent: 5}) {
		t.Fatalf("peripheral = %+v", motes.Peripheral)
	}
	if motes.Personal != (SubPool{Available: 7, Spent: 3}) {
		t.Fatalf("personal = %+v", motes.Personal)
	}
}

func TestCheckSpendRejections(t *testing.T) {
	motes := Full(Capacity{Peripheral: 2, Personal: 1})
	tests := []struct {
		name   string
		amount int
		first  Kind
		want   error
	}{
		{name: "zero", amount: 0, first: Peripheral, want: ErrInvalidAmount},
		{name: "negative", amount: -3, first: Personal, want: ErrInvalidAmount},
		{name: "bad pool", amount: 1, first: "other", want: ErrInvalidPool},
		{name: "too many", amount: 4, first: Peripheral, want: ErrInsufficient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := motes.CheckSpend(tt.amount, tt.first); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSpendWithoutCheckIsInvariantViolation(t *testing.T) {
	motes := Full(Capacity{Peripheral: 1, Personal: 1})
	before := motes
	if err := motes.Spend(3, Peripheral); !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
	if motes.Peripheral != before.Peripheral || motes.Personal != before.Personal {
		t.Fatal("failed spend must not change the pool")
	}
}

// Uncommitted motes return as spent, not available, so only each sub-pool's
// total is restored until the motes are recovered.
func TestCommitThenUncommitRestoresSubPoolTotals(t *testing.T) {
	motes := Full(essenceThree)
	if err := motes.Spend(4, Personal); err != nil {
		t.Fatalf("spend: %v", err)
	}
	before := motes.Clone()

	if err := motes.CheckCommit("artifact-X", 50, Peripheral); err != nil {
		t.Fatalf("check commit: %v", err)
	}
	if err := motes.Commit("artifact-X", 50, Peripheral); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got := motes.Commitments["artifact-X"]; got != (Commitment{Peripheral: 47, Personal: 3}) {
		t.Fatalf("commitment = %+v", got)
	}
	if err := motes.CheckUncommit("artifact-X"); err != nil {
		t.Fatalf("check uncommit: %v", err)
	}
	if err := motes.Uncommit("artifact-X"); err != nil {
		t.Fatalf("uncommit: %v", err)
	}
	if len(motes.Commitments) != 0 {
		t.Fatalf("commitments = %v", motes.Commitments)
	}
	for _, kind := range []Kind{Peripheral, Personal} {
		got, want := motes.Sub(kind), before.Sub(kind)
		if got.Available+got.Spent != want.Available+want.Spent {
			t.Fatalf("%s = %+v, before %+v", kind, got, want)
		}
	}
	if err := motes.Recover(50); err != nil {
		t.Fatalf("recover: %v", err)
	}
	if motes.Peripheral != before.Peripheral || motes.Personal != before.Personal {
		t.Fatalf("split = %+v/%+v, want %+v/%+v", motes.Peripheral, motes.Personal, before.Peripheral, before.Personal)
	}
}

func TestCommitRejections(t *testing.T) {
	motes := Full(essenceThree)
	if err := motes.Commit("ward", 3, Peripheral); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := motes.CheckCommit("ward", 1, Peripheral); !errors.Is(err, ErrDuplicateCommitment) {
		t.Fatalf("err = %v, want ErrDuplicateCommitment", err)
	}
	if err := motes.CheckCommit(" ", 1, Peripheral); !errors.Is(err, ErrInvalidCommitment) {
		t.Fatalf("err = %v, want ErrInvalidCommitment", err)
	}
	if err := motes.CheckUncommit("missing"); !errors.Is(err, ErrCommitmentNotFound) {
		t.Fatalf("err = %v, want ErrCommitmentNotFound", err)
	}
	if err := motes.Commit("ward", 1, Peripheral); !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
}

func TestRecoverFillsPeripheralFirst(t *testing.T) {
	motes := Full(Capacity{Peripheral: 10, Personal: 10})
	if err := motes.Spend(6, Peripheral); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if err := motes.Spend(4, Personal); err != nil {
		t.Fatalf("spend: %v", err)
	}
	if err := motes.Recover(8); err != nil {
		t.Fatalf("recover: %v", err)
	}
	if motes.Peripheral != (SubPool{Available: 10}) {
		t.Fatalf("peripheral = %+v", motes.Peripheral)
	}
	if motes.Personal != (SubPool{Available: 8, Spent: 2}) {
		t.Fatalf("personal = %+v", motes.Personal)
	}
	if err := motes.Recover(100); err != nil {
		t.Fatalf("recover: %v", err)
	}
	if motes.Spent() != 0 || motes.Available() != 20 {
		t.Fatalf("pool = %+v", motes)
	}
}

func TestResetReleasesCommitments(t *testing.T) {
	motes := Full(essenceThree)
	if err := motes.Commit("artifact-X", 10, Peripheral); err != nil {
		t.Fatalf("commit: %v", err)
	}
	released := motes.Reset(Capacity{Peripheral: 33, Personal: 16})
	if len(released) != 1 || released[0] != "artifact-X" {
		t.Fatalf("released = %v", released)
	}
	if motes.Peripheral != (SubPool{Available: 33}) || motes.Personal != (SubPool{Available: 16}) {
		t.Fatalf("pool = %+v", motes)
	}
	if motes.Commitments != nil {
		t.Fatalf("commitments = %v", motes.Commitments)
	}
}

func TestRandomOperationsKeepCapacity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	motes := Full(essenceThree)
	kinds := []Kind{Peripheral, Personal}
	for step := range 2000 {
		amount := rng.IntN(12) + 1
		first := kinds[rng.IntN(2)]
		switch rng.IntN(4) {
		case 0:
			if motes.CheckSpend(amount, first) == nil {
				if err := motes.Spend(amount, first); err != nil {
					t.Fatalf("step %d spend: %v", step, err)
				}
			}
		case 1:
			name := "c" + strconv.Itoa(rng.IntN(6))
			if motes.CheckCommit(name, amount, first) == nil {
				if err := motes.Commit(name, amount, first); err != nil {
					t.Fatalf("step %d commit: %v", step, err)
				}
			}
		case 2:
			name := "c" + strconv.Itoa(rng.IntN(6))
			if motes.CheckUncommit(name) == nil {
				if err := motes.Uncommit(name); err != nil {
					t.Fatalf("step %d uncommit: %v", step, err)
				}
			}
		case 3:
			if err := motes.Recover(amount); err != nil {
				t.Fatalf("step %d recover: %v", step, err)
			}
		}
		if err := motes.Verify(essenceThree); err != nil {
			t.Fatalf("step %d: %v (%+v)", step, err, motes)
		}
	}
}

func TestVerifyDetectsDrift(t *testing.T) {
	motes := Full(essenceThree)
	motes.Peripheral.Available--
	if err := motes.Verify(essenceThree); !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
}
