// Package plans holds the investment plan table. A Table is never mutated
// after it is published; edits produce a new Table with a higher version.
package plans

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/investledger/internal/domain"
)

type Plan struct {
	Name           string          `json:"name"`
	MinAmount      decimal.Decimal `json:"min_amount"`
	MaxAmount      decimal.Decimal `json:"max_amount"`
	ReturnsPercent decimal.Decimal `json:"returns_percent"`
	DurationDays   int             `json:"duration_days"`
}

func (p Plan) validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: empty name", domain.ErrInvalidPlan)
	case !p.MinAmount.IsPositive(), p.MaxAmount.LessThan(p.MinAmount):
		return fmt.Errorf("%w: %s has bad amount range", domain.ErrInvalidPlan, p.Name)
	case p.ReturnsPercent.IsNegative():
		return fmt.Errorf("%w: %s has negative returns", domain.ErrInvalidPlan, p.Name)
	case p.DurationDays <= 0:
		return fmt.Errorf("%w: %s has non-positive duration", domain.ErrInvalidPlan, p.Name)
	}
	return nil
}

type Table struct {
	Version int
	plans   []Plan
}

func NewTable(version int, plans []Plan) (*Table, error) {
	cp := make([]Plan, len(plans))
	copy(cp, plans)
	for _, p := range cp {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	return &Table{Version: version, plans: cp}, nil
}

// Plans returns a copy of the table rows.
func (t *Table) Plans() []Plan {
	cp := make([]Plan, len(t.plans))
	copy(cp, t.plans)
	return cp
}

// Lookup finds the plan whose range contains amount.
func (t *Table) Lookup(amount decimal.Decimal) (Plan, error) {
	for _, p := range t.plans {
		if amount.GreaterThanOrEqual(p.MinAmount) && amount.LessThanOrEqual(p.MaxAmount) {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("%w: no plan for %s", domain.ErrInvalidAmount, amount)
}

func (t *Table) byName(name string) (int, bool) {
	for i, p := range t.plans {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Patch carries the fields an admin may change; nil means unchanged.
type Patch struct {
	MinAmount      *decimal.Decimal
	MaxAmount      *decimal.Decimal
	ReturnsPercent *decimal.Decimal
	DurationDays   *int
}

type Registry struct {
	mu      sync.Mutex
	current atomic.Pointer[Table]
}

func NewRegistry(t *Table) *Registry {
	r := &Registry{}
	r.current.Store(t)
	return r
}

func (r *Registry) Current() *Table {
	return r.current.Load()
}

// Update publishes a new table version with the named plan patched.
// Readers holding the previous table keep seeing it unchanged.
func (r *Registry) Update(name string, patch Patch) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.current.Load()
	i, ok := cur.byName(name)
	if !ok {
		return nil, fmt.Errorf("plan %q: %w", name, domain.ErrNotFound)
	}
	rows := cur.Plans()
	p := rows[i]
	if patch.MinAmount != nil {
		p.MinAmount = *patch.MinAmount
	}
	if patch.MaxAmount != nil {
		p.MaxAmount = *patch.MaxAmount
	}
	if patch.ReturnsPercent != nil {
		p.ReturnsPercent = *patch.ReturnsPercent
	}
	if patch.DurationDays != nil {
		p.DurationDays = *patch.DurationDays
	}
	rows[i] = p

	next, err := NewTable(cur.Version+1, rows)
	if err != nil {
		return nil, err
	}
	r.current.Store(next)
	return next, nil
}

func plan(name string, minAmount, maxAmount, percent int64, days int) Plan {
	return Plan{
		Name:           name,
		MinAmount:      decimal.NewFromInt(minAmount),
		MaxAmount:      decimal.NewFromInt(maxAmount),
		ReturnsPercent: decimal.NewFromInt(percent),
		DurationDays:   days,
	}
}

// Default is the plan table the platform starts with.
func Default() *Table {
	return &Table{
		Version: 1,
		plans: []Plan{
			plan("Bronze", 3, 10, 5, 1),
			plan("Silver", 11, 50, 7, 1),
			plan("Gold", 51, 200, 10, 2),
			plan("Platinum", 201, 500, 15, 3),
			plan("Diamond", 501, 1000, 20, 5),
			plan("Elite", 1001, 50000, 25, 1),
		},
	}
}
