package game

import "encoding/json"

// Well-known status ids. Mechanics for these live in the mechanic registry;
// the engine only hard-codes the ids whose bookkeeping it owns (advantage
// consumption, haste/slow/bind speed math, adaptation pierce).
const (
	StatusAdvantage  = "advantage"
	StatusHaste      = "haste"
	StatusSlow       = "slow"
	StatusBind       = "bind"
	StatusAdaptation = "adaptation"

	StatusBleed             = "bleed"
	StatusBurn              = "burn"
	StatusStrength          = "strength"
	StatusFeeble            = "feeble"
	StatusProtection        = "protection"
	StatusFragile           = "fragile"
	StatusSmoke             = "smoke"
	StatusCharge            = "charge"
	StatusBarrier           = "barrier"
	StatusDisarm            = "disarm"
	StatusStaggerProtection = "stagger_protection"
)

// StatusEntry is one dated stack of a status: amount units expiring after
// duration round ends. Zero-amount entries are pruned on write.
type StatusEntry struct {
	Amount   int `json:"amount"`
	Duration int `json:"duration"`
}

// DelayedStatus waits in the delayed queue until its delay ticks to zero,
// then applies through the normal add path.
type DelayedStatus struct {
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
	Duration int    `json:"duration"`
	Delay    int    `json:"delay"`
}

// GetStatus returns the total stacked amount across all entries.
func (u *Unit) GetStatus(name string) int {
	total := 0
	for _, e := range u.Statuses[name] {
		total += e.Amount
	}
	return total
}

// HasStatus reports whether at least one stack is present.
func (u *Unit) HasStatus(name string) bool {
	return u.GetStatus(name) > 0
}

// CooldownList is a per-card stack of remaining cooldown rounds, one entry
// per copy of the card. Older saves stored a bare scalar; it is normalized
// into a singleton list on decode instead of rejected.
type CooldownList []int

func (c *CooldownList) UnmarshalJSON(data []byte) error {
	var list []int
	if err := json.Unmarshal(data, &list); err == nil {
		*c = list
		return nil
	}
	var scalar int
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	*c = CooldownList{scalar}
	return nil
}
