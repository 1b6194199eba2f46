package rarity

import "fmt"

// Classifier maps quality scores onto a validated tier table
type Classifier struct {
	table Table
}

// NewClassifier validates the table before accepting it
func NewClassifier(table Table) (*Classifier, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	cp := make(Table, len(table))
	copy(cp, table)
	return &Classifier{table: cp}, nil
}

// NewDefaultClassifier uses DefaultTable
func NewDefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultTable())
	if err != nil {
		panic(fmt.Sprintf("default rarity table is invalid: %v", err))
	}
	return c
}

// Classify returns the tier for score. Checks run from the rarest tier down and
// the first match wins, so every integer lands in exactly one tier.
func (c *Classifier) Classify(score int) Tier {
	for i := len(c.table) - 1; i > 0; i-- {
		if score >= c.table[i].MinScore {
			return c.table[i]
		}
	}
	return c.table[0]
}

// Table returns a copy of the tiers in use
func (c *Classifier) Table() Table {
	cp := make(Table, len(c.table))
	copy(cp, c.table)
	return cp
}
