package engine

import (
	"sort"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// AddStatus applies stacks of a status to a unit. The before-add filter
// chain may veto (returning the block reason); a positive delay queues the
// entry instead of applying it; pool statuses merge into a single entry
// taking the longer duration.
//
// suppressTriggers must be true when called from a mechanic that copies
// statuses around (buff sharing), otherwise application triggers cascade
// without bound. This is a hard invariant, made explicit rather than left
// to caller convention.
func (e *Engine) AddStatus(u *game.Unit, name string, amount, duration, delay int, suppressTriggers bool) (bool, string) {
	if amount <= 0 || name == "" {
		return false, ""
	}
	if blocked, reason := e.filterBeforeStatusAdd(u, name, amount); blocked {
		return false, reason
	}
	if delay > 0 {
		u.DelayedStatuses = append(u.DelayedStatuses, game.DelayedStatus{
			Name: name, Amount: amount, Duration: duration, Delay: delay,
		})
		return true, ""
	}

	if u.Statuses == nil {
		u.Statuses = map[string][]game.StatusEntry{}
	}
	if e.reg.IsPoolStatus(name) && len(u.Statuses[name]) > 0 {
		entry := &u.Statuses[name][0]
		entry.Amount += amount
		if duration > entry.Duration {
			entry.Duration = duration
		}
	} else {
		u.Statuses[name] = append(u.Statuses[name], game.StatusEntry{Amount: amount, Duration: duration})
	}

	if !suppressTriggers {
		e.triggerStatusApplied(u, name, amount)
	}
	return true, ""
}

// RemoveStatus subtracts amount stacks, consuming the shortest-remaining-
// duration entries first. A negative amount clears the status entirely.
func (e *Engine) RemoveStatus(u *game.Unit, name string, amount int) {
	entries := u.Statuses[name]
	if len(entries) == 0 {
		return
	}
	if amount < 0 {
		delete(u.Statuses, name)
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Duration < entries[j].Duration
	})
	remaining := amount
	kept := entries[:0]
	for _, entry := range entries {
		if remaining >= entry.Amount {
			remaining -= entry.Amount
			continue
		}
		entry.Amount -= remaining
		remaining = 0
		kept = append(kept, entry)
	}
	if len(kept) == 0 {
		delete(u.Statuses, name)
		return
	}
	u.Statuses[name] = kept
}

// ProcessTurnEnd runs the end-of-round status bookkeeping: every entry's
// duration decays and expired entries are pruned, and the delayed queue
// ticks down, activating entries through the normal add path. Effect logic
// for round end is dispatched separately via the trigger primitives —
// lifecycle bookkeeping and effect execution stay decoupled.
func (e *Engine) ProcessTurnEnd(u *game.Unit) {
	for name, entries := range u.Statuses {
		kept := entries[:0]
		for _, entry := range entries {
			entry.Duration--
			if entry.Duration > 0 && entry.Amount > 0 {
				kept = append(kept, entry)
			}
		}
		if len(kept) == 0 {
			delete(u.Statuses, name)
			continue
		}
		u.Statuses[name] = kept
	}

	if len(u.DelayedStatuses) > 0 {
		// Activation triggers can cascade back into AddStatus and queue
		// fresh delayed entries; the drain must not overwrite them.
		queued := u.DelayedStatuses
		u.DelayedStatuses = nil
		var pending []game.DelayedStatus
		for _, d := range queued {
			d.Delay--
			if d.Delay <= 0 {
				e.AddStatus(u, d.Name, d.Amount, d.Duration, 0, false)
				continue
			}
			pending = append(pending, d)
		}
		u.DelayedStatuses = append(pending, u.DelayedStatuses...)
	}
}
