package engine

import (
	"sort"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// Base speed die bounds before initiative and skill bonuses.
const (
	baseSpeedMin = 1
	baseSpeedMax = 6
)

// Card type execution priorities. Actions run in strictly descending
// (priority + speed + tiebreak) order.
const (
	priorityOnPlay    = 5000
	priorityMass      = 4000
	priorityRanged    = 3000
	priorityOffensive = 2000
	priorityMelee     = 1000

	// Left-side mass actions get a nudge so simultaneous mass attacks
	// resolve in a stable order.
	leftMassNudge = 500
)

func cardTypePriority(t game.CardType) int {
	switch t {
	case game.CardOnPlay, game.CardItem:
		return priorityOnPlay
	case game.CardMassSummation, game.CardMassIndividual:
		return priorityMass
	case game.CardRanged:
		return priorityRanged
	case game.CardOffensive:
		return priorityOffensive
	case game.CardMelee:
		return priorityMelee
	}
	return 0
}

// RollSpeedDice fills the unit's active slots for the round. A staggered
// unit gets a single stunned zero-speed slot; otherwise one slot per speed
// die, with the die count and per-die bonus derived from the speed skill
// and each roll shifted by haste/slow/bind.
func (e *Engine) RollSpeedDice(u *game.Unit) {
	u.ActiveSlots = nil
	if u.IsDead() {
		return
	}
	if u.IsStaggered() {
		slot := &game.ActiveSlot{Speed: 0, Stunned: true, TargetUnit: -1, TargetSlot: -1}
		u.ActiveSlots = []*game.ActiveSlot{slot}
		e.triggerSpeedRolled(u, slot)
		return
	}

	speedSkill := u.Skill(game.SkillSpeed)
	count := game.SafeIntDiv(speedSkill, 10) + 1
	count += e.filterSpeedDiceBonus(u)
	if count < 1 {
		count = 1
	}

	init := u.StatBonus(game.ModInitiative, 0)
	shift := u.GetStatus(game.StatusHaste) - u.GetStatus(game.StatusSlow) - u.GetStatus(game.StatusBind)

	for i := 0; i < count; i++ {
		remaining := speedSkill - i*10
		if remaining < 0 {
			remaining = 0
		}
		if remaining > 10 {
			remaining = 10
		}
		bonus := remaining / 2

		value := e.rollRange(baseSpeedMin+init+bonus, baseSpeedMax+init+bonus)
		value += shift
		value = e.filterSpeedDiceValue(u, value)
		if value < 1 {
			value = 1
		}

		slot := &game.ActiveSlot{Speed: value, TargetUnit: -1, TargetSlot: -1}
		e.filterActiveSlot(u, slot)
		u.ActiveSlots = append(u.ActiveSlots, slot)
		e.triggerSpeedRolled(u, slot)
	}
}

// CalculateRedirections resolves interception for one defending team:
// for every defender slot, attackers declaring that (unit, slot) as their
// target compete to claim the clash. An attacker qualifies when strictly
// faster than the defender slot (or as fast, given the equal-speed
// redirect capability), or when the targeting is mutual. The best
// qualifier by (aggro bonus + speed) is flagged for a clash; the rest are
// forced one-sided. Called once per direction.
func (e *Engine) CalculateRedirections(attackers, defenders []*game.Unit) {
	for di, defender := range defenders {
		for dj, defSlot := range defender.ActiveSlots {
			type candidate struct {
				slot  *game.ActiveSlot
				score int
			}
			var candidates []candidate

			for ai, attacker := range attackers {
				for aj, attSlot := range attacker.ActiveSlots {
					if attSlot.Card == nil || attSlot.Stunned || attSlot.Consumed {
						continue
					}
					if attSlot.TargetUnit != di || attSlot.TargetSlot != dj {
						continue
					}
					mutual := defSlot.HasTarget() && defSlot.TargetUnit == ai && defSlot.TargetSlot == aj
					qualifies := mutual
					if !qualifies && !defSlot.Locked {
						if attSlot.Speed > defSlot.Speed {
							qualifies = true
						} else if attSlot.Speed == defSlot.Speed && e.canRedirectOnEqualSpeed(attacker) {
							qualifies = true
						}
					}
					if !qualifies {
						continue
					}
					score := attSlot.Speed
					if attSlot.IsAggro {
						score += 1000
					}
					candidates = append(candidates, candidate{slot: attSlot, score: score})
				}
			}
			if len(candidates) == 0 {
				continue
			}
			best := 0
			for i := 1; i < len(candidates); i++ {
				if candidates[i].score > candidates[best].score {
					best = i
				}
			}
			for i, c := range candidates {
				if i == best {
					c.slot.ForceClash = true
					c.slot.ForceOneSided = false
				} else if !c.slot.ForceClash {
					c.slot.ForceOneSided = true
				}
			}
		}
	}
}

// SlotKey identifies one slot across both teams for executed-slot
// bookkeeping. Side 0 is the left team.
type SlotKey struct {
	Side int
	Unit int
	Slot int
}

// Action is one scheduled slot execution with its priority score.
type Action struct {
	Side  int
	Unit  int
	Slot  int
	Score float64
}

// buildActionQueue scores every playable slot on both teams and orders
// them for execution.
func (e *Engine) buildActionQueue() []Action {
	var actions []Action
	addTeam := func(side int, team []*game.Unit) {
		for ui, u := range team {
			if u.IsDead() {
				continue
			}
			for si, slot := range u.ActiveSlots {
				if slot.Card == nil || slot.Stunned || slot.Consumed {
					continue
				}
				score := float64(cardTypePriority(slot.Card.Type) + slot.Speed)
				if side == 0 && slot.Card.Type.IsMass() {
					score += leftMassNudge
				}
				// Random tiebreak below integer resolution keeps equal
				// scores from depending on iteration order.
				score += float64(e.rng.Intn(1000)) / 1000.0 * 0.99
				actions = append(actions, Action{Side: side, Unit: ui, Slot: si, Score: score})
			}
		}
	}
	addTeam(0, e.left)
	addTeam(1, e.right)

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Score > actions[j].Score
	})
	return actions
}
