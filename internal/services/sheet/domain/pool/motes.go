// Package pool holds the resource-pool arithmetic for willpower and essence
// motes. Every operation comes as a CheckX that reports rule violations and an
// apply method that assumes the check passed and only fails on a broken invariant.
package pool

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
)

// Kind names a mote sub-pool.
type Kind string

const (
	Peripheral Kind = "peripheral"
	Personal   Kind = "personal"
)

// Valid reports whether k names a sub-pool.
func (k Kind) Valid() bool {
	return k == Peripheral || k == Personal
}

func (k Kind) other() Kind {
	if k == Peripheral {
		return Personal
	}
	return Peripheral
}

var (
	ErrInvalidAmount       = apperrors.New(apperrors.CodeEssenceInvalidAmount, "mote amount must be positive")
	ErrInvalidPool         = apperrors.New(apperrors.CodeEssenceInvalidPool, "unknown mote pool")
	ErrInsufficient        = apperrors.New(apperrors.CodeEssenceInsufficient, "not enough motes available")
	ErrDuplicateCommitment = apperrors.New(apperrors.CodeEssenceDuplicateCommitment, "commitment already exists")
	ErrCommitmentNotFound  = apperrors.New(apperrors.CodeEssenceCommitmentNotFound, "commitment not found")
	ErrInvalidCommitment   = apperrors.New(apperrors.CodeEssenceInvalidCommitment, "commitment name is blank")
	ErrInvariant           = apperrors.New(apperrors.CodeInvariantViolation, "resource pool invariant violated")
)

// SubPool is one side of the mote pool.
type SubPool struct {
	Available int `json:"available"`
	Spent     int `json:"spent"`
}

// Commitment is the split of motes held under one name.
type Commitment struct {
	Peripheral int `json:"peripheral"`
	Personal   int `json:"personal"`
}

// Total returns the motes held across both sub-pools.
func (c Commitment) Total() int {
	return c.Peripheral + c.Personal
}

func (c Commitment) of(kind Kind) int {
	if kind == Peripheral {
		return c.Peripheral
	}
	return c.Personal
}

// Capacity is the rating-derived size of each sub-pool.
type Capacity struct {
	Peripheral int `json:"peripheral"`
	Personal   int `json:"personal"`
}

// Motes is the essence pool: two sub-pools and the named commitments drawn from them.
type Motes struct {
	Peripheral  SubPool               `json:"peripheral"`
	Personal    SubPool               `json:"personal"`
	Commitments map[string]Commitment `json:"commitments,omitempty"`
}

// Full returns a pool with every mote available.
func Full(capacity Capacity) Motes {
	return Motes{
		Peripheral: SubPool{Available: capacity.Peripheral},
		Personal:   SubPool{Available: capacity.Personal},
	}
}

// Sub returns the sub-pool named by kind.
func (m Motes) Sub(kind Kind) SubPool {
	if kind == Peripheral {
		return m.Peripheral
	}
	return m.Personal
}

func (m *Motes) sub(kind Kind) *SubPool {
	if kind == Peripheral {
		return &m.Peripheral
	}
	return &m.Personal
}

// Available returns the motes available across both sub-pools.
func (m Motes) Available() int {
	return m.Peripheral.Available + m.Personal.Available
}

// Spent returns the motes spent across both sub-pools.
func (m Motes) Spent() int {
	return m.Peripheral.Spent + m.Personal.Spent
}

// Committed sums every commitment per sub-pool.
func (m Motes) Committed() Commitment {
	var total Commitment
	for _, held := range m.Commitments {
		total.Peripheral += held.Peripheral
		total.Personal += held.Personal
	}
	return total
}

// CommitmentNames lists commitments in name order.
func (m Motes) CommitmentNames() []string {
	return slices.Sorted(maps.Keys(m.Commitments))
}

// draw splits amount across the sub-pools, taking from first before the other.
func (m Motes) draw(amount int, first Kind) Commitment {
	fromFirst := min(amount, m.Sub(first).Available)
	fromOther := amount - fromFirst
	if first == Peripheral {
		return Commitment{Peripheral: fromFirst, Personal: fromOther}
	}
	return Commitment{Peripheral: fromOther, Personal: fromFirst}
}

func (m Motes) checkDraw(amount int, first Kind) error {
	if amount <= 0 {
		return ErrInvalidAmount.With("amount", strconv.Itoa(amount))
	}
	if !first.Valid() {
		return ErrInvalidPool.With("pool", string(first))
	}
	if m.Available() < amount {
		return ErrInsufficient.
			With("available", strconv.Itoa(m.Available())).
			With("required", strconv.Itoa(amount))
	}
	return nil
}

// CheckSpend validates spending amount motes starting with first.
func (m Motes) CheckSpend(amount int, first Kind) error {
	return m.checkDraw(amount, first)
}

// Spend moves amount motes from available to spent, overflowing from first into the other pool.
func (m *Motes) Spend(amount int, first Kind) error {
	if m.Available() < amount || amount <= 0 {
		return invariant("spend", amount)
	}
	split := m.draw(amount, first)
	for _, kind := range []Kind{Peripheral, Personal} {
		sub := m.sub(kind)
		sub.Available -= split.of(kind)
		sub.Spent += split.of(kind)
	}
	return nil
}

// CheckCommit validates holding amount motes under name.
func (m Motes) CheckCommit(name string, amount int, first Kind) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidCommitment
	}
	if _, ok := m.Commitments[name]; ok {
		return ErrDuplicateCommitment.With("commitment", name)
	}
	return m.checkDraw(amount, first)
}

// Commit draws amount motes like Spend but records them under name.
func (m *Motes) Commit(name string, amount int, first Kind) error {
	if _, ok := m.Commitments[name]; ok || m.Available() < amount || amount <= 0 {
		return invariant("commit", amount).With("commitment", name)
	}
	split := m.draw(amount, first)
	m.Peripheral.Available -= split.Peripheral
	m.Personal.Available -= split.Personal
	if m.Commitments == nil {
		m.Commitments = make(map[string]Commitment)
	}
	m.Commitments[name] = split
	return nil
}

// CheckUncommit validates releasing the commitment held under name.
func (m Motes) CheckUncommit(name string) error {
	if _, ok := m.Commitments[name]; !ok {
		return ErrCommitmentNotFound.With("commitment", name)
	}
	return nil
}

// Uncommit releases name. Its motes become spent in the sub-pool they came
// from, recoverable later but not available right away.
func (m *Motes) Uncommit(name string) error {
	held, ok := m.Commitments[name]
	if !ok {
		return invariant("uncommit", 0).With("commitment", name)
	}
	delete(m.Commitments, name)
	m.Peripheral.Spent += held.Peripheral
	m.Personal.Spent += held.Personal
	return nil
}

// CheckRecover validates recovering amount motes.
func (m Motes) CheckRecover(amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount.With("amount", strconv.Itoa(amount))
	}
	return nil
}

// Recover moves up to amount spent motes back to available, refilling
// peripheral completely before personal. Recovery beyond what is spent is dropped.
func (m *Motes) Recover(amount int) error {
	if amount <= 0 {
		return invariant("recover", amount)
	}
	for _, kind := range []Kind{Peripheral, Personal} {
		sub := m.sub(kind)
		moved := min(amount, sub.Spent)
		sub.Spent -= moved
		sub.Available += moved
		amount -= moved
	}
	return nil
}

// Reset drops every commitment and refills both sub-pools to capacity.
// It returns the released commitment names.
func (m *Motes) Reset(capacity Capacity) []string {
	released := m.CommitmentNames()
	*m = Full(capacity)
	return released
}

// Clone returns a deep copy.
func (m Motes) Clone() Motes {
	cloned := m
	cloned.Commitments = maps.Clone(m.Commitments)
	return cloned
}

// Verify checks that nothing is negative and that each sub-pool adds up to capacity.
func (m Motes) Verify(capacity Capacity) error {
	for name, held := range m.Commitments {
		if strings.TrimSpace(name) == "" || held.Peripheral < 0 || held.Personal < 0 || held.Total() == 0 {
			return ErrInvariant.With("commitment", name)
		}
	}
	committed := m.Committed()
	for _, kind := range []Kind{Peripheral, Personal} {
		sub := m.Sub(kind)
		if sub.Available < 0 || sub.Spent < 0 {
			return ErrInvariant.With("pool", string(kind))
		}
		want := capacity.Peripheral
		if kind == Personal {
			want = capacity.Personal
		}
		if got := sub.Available + sub.Spent + committed.of(kind); got != want {
			return ErrInvariant.With("pool", string(kind)).
				With("total", strconv.Itoa(got)).
				With("capacity", strconv.Itoa(want))
		}
	}
	return nil
}

func invariant(operation string, amount int) *apperrors.Error {
	return ErrInvariant.With("operation", operation).With("amount", strconv.Itoa(amount))
}
