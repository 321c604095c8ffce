package engine

import (
	"github.com/librozavisim/lor-simulator/internal/game"
)

// resolveOneSided walks the attacker's dice against a defender that is not
// clashing back. Each attacking die is answered, in order of preference,
// by a stored or counter die (a counter-clash under the normal win/lose
// rules), by a defensive die at the same index on the defender's yet
// unplayed card, or by nothing at all.
func (e *Engine) resolveOneSided(attackerSide int, att *clashSide, defUnit *game.Unit, defSlot *game.ActiveSlot) []LogEntry {
	var logs []LogEntry
	def := &clashSide{unit: defUnit, slot: defSlot}

	// An ambush-capable defender with a big speed lead breaks the opening
	// die even without a card. This outranks the normal speed-gap rules.
	broke := false
	if (defSlot == nil || defSlot.Card == nil) && defSlot != nil &&
		defSlot.Speed-att.slot.Speed >= speedGapDestroy && e.canBreakEmptySlot(defUnit) &&
		!e.preventsSurpriseAttack(att.unit) {
		if len(att.queue) > 0 && !e.preventsDiceDestruction(att.unit, &att.queue[0]) {
			att.destroyFirst = true
			broke = true
			logs = append(logs, e.event(defUnit.Name+" breaks "+att.unit.Name+"'s opening die"))
		}
	}
	if !broke && defSlot != nil {
		e.applySpeedGap(att, def, &logs)
	}

	for i := 0; i < maxOneSidedIterations; i++ {
		if att.unit.IsDead() || defUnit.IsDead() {
			break
		}
		entry := LogEntry{Round: e.round}
		aDie := e.nextDie(att, &entry)
		if aDie == nil {
			if len(entry.Details) > 0 {
				logs = append(logs, entry)
			}
			break
		}

		dDie := e.nextDie(def, &entry)
		passive := false
		if dDie == nil && defSlot != nil && defSlot.Card != nil && !defSlot.Consumed && i < len(defSlot.Card.Dice) {
			// A defensive die at the matching index answers passively
			// without being consumed; the card still acts on its own turn.
			pd := defSlot.Card.Dice[i]
			if pd.Type.IsDefensive() && !pd.IsCounter {
				d := pd.Clone()
				dDie = &d
				passive = true
			}
		}

		if dDie == nil {
			e.resolveUncontested(attackerSide, att, aDie, defUnit, &entry)
			logs = append(logs, entry)
			continue
		}

		if passive {
			defUnit.CurrentCard = defSlot.Card
		}
		attCtx := e.CreateRollContext(att.unit, defUnit, aDie, att.disadvantage)
		defCtx := e.CreateRollContext(defUnit, att.unit, dDie, def.disadvantage)
		attCtx.Opponent, defCtx.Opponent = defCtx, attCtx
		e.resolveExchange(attackerSide, att, def, attCtx, defCtx, &entry)
		if passive {
			defUnit.CurrentCard = nil
			// Passive dice do not recycle; they answer once per index.
			def.pending = nil
		}
		logs = append(logs, entry)
	}

	e.finishSide(att)
	// The defender's slot stays live; only a recycled evade drawn from
	// storage goes back to the bank.
	if def.pending != nil && def.pending.Type == game.DamageEvade && def.pendingFromStorage {
		defUnit.StoredDice = append(defUnit.StoredDice, def.pending.Clone())
	}
	return logs
}
