package engine

import (
	"strconv"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// clashSide is the per-side state of the clash machine: the card's dice
// queue, a pending recycled die, and the speed-gap flags. The same shape
// drives one-sided defense, where the queue is empty and only stored and
// counter dice answer.
type clashSide struct {
	unit *game.Unit
	slot *game.ActiveSlot

	queue []game.Die
	idx   int

	// pending holds a recycled die (a won evade, or a surviving counter)
	// that acts again next iteration.
	pending            *game.Die
	pendingFromStorage bool
	lastFromStorage    bool

	disadvantage bool
	destroyFirst bool
}

// newClashSide prepares one side: the card becomes the unit's current
// card, its counter dice are banked for later retrieval and the rest form
// the dice queue.
func (e *Engine) newClashSide(u *game.Unit, slot *game.ActiveSlot) *clashSide {
	cs := &clashSide{unit: u, slot: slot}
	if slot != nil && slot.Card != nil {
		u.CurrentCard = slot.Card
		cs.queue = e.bankCounterDice(u, slot.Card)
	}
	return cs
}

// bankCounterDice splits a played card: counter dice are stored on the
// unit for later retrieval, the rest resolve in order.
func (e *Engine) bankCounterDice(u *game.Unit, card *game.Card) []game.Die {
	queue := make([]game.Die, 0, len(card.Dice))
	for _, d := range card.Dice {
		if d.IsCounter {
			u.CounterDice = append(u.CounterDice, d.Clone())
			continue
		}
		queue = append(queue, d.Clone())
	}
	return queue
}

// nextDie picks the die acting this iteration: a pending recycled die
// first, then the next queue die (skipping one destroyed by the speed
// gap), then stored and counter dice. Stored and counter dice are
// unavailable while staggered unless a mechanic allows them.
func (e *Engine) nextDie(cs *clashSide, entry *LogEntry) *game.Die {
	if cs.pending != nil {
		d := cs.pending
		cs.pending = nil
		cs.lastFromStorage = cs.pendingFromStorage
		cs.pendingFromStorage = false
		return d
	}
	for cs.idx < len(cs.queue) {
		if cs.idx == 0 && cs.destroyFirst {
			entry.Add(cs.unit.Name + "'s " + string(cs.queue[0].Type) + " die is destroyed by the speed gap")
			cs.idx++
			continue
		}
		d := cs.queue[cs.idx]
		cs.idx++
		cs.lastFromStorage = false
		return &d
	}
	if cs.unit.IsStaggered() && !e.canUseStoredWhileStaggered(cs.unit) {
		return nil
	}
	if len(cs.unit.StoredDice) > 0 {
		d := cs.unit.StoredDice[0]
		cs.unit.StoredDice = cs.unit.StoredDice[1:]
		cs.lastFromStorage = true
		return &d
	}
	if len(cs.unit.CounterDice) > 0 {
		d := cs.unit.CounterDice[0]
		cs.unit.CounterDice = cs.unit.CounterDice[1:]
		cs.lastFromStorage = true
		return &d
	}
	return nil
}

// applySpeedGap sets the destruction/disadvantage flags from the speed
// difference between the two slots. Destruction immunity on the slower
// side flips into an advantage grant for the faster side.
func (e *Engine) applySpeedGap(a, b *clashSide, logs *[]LogEntry) {
	gap := a.slot.Speed - b.slot.Speed
	faster, slower := a, b
	if gap < 0 {
		gap = -gap
		faster, slower = b, a
	}
	switch {
	case gap >= speedGapDestroy:
		if faster.slot.DestroyOnSpeed {
			if len(slower.queue) > 0 && e.preventsDiceDestruction(slower.unit, &slower.queue[0]) {
				e.AddStatus(faster.unit, game.StatusAdvantage, 1, 1, 0, true)
				*logs = append(*logs, e.event(slower.unit.Name+" keeps their dice; "+faster.unit.Name+" gains advantage instead"))
			} else {
				slower.destroyFirst = true
			}
		} else {
			slower.disadvantage = true
		}
	case gap >= speedGapDisadvantage:
		slower.disadvantage = true
	}
}

// resolveClashPair walks both dice queues to exhaustion. attackerSide maps
// the attacker onto the log's left (0) or right (1) column.
func (e *Engine) resolveClashPair(attackerSide int, att, def *clashSide) []LogEntry {
	var logs []LogEntry
	e.applySpeedGap(att, def, &logs)

	for i := 0; i < maxClashIterations; i++ {
		if att.unit.IsDead() || def.unit.IsDead() {
			break
		}
		entry := LogEntry{Round: e.round}
		aDie := e.nextDie(att, &entry)
		dDie := e.nextDie(def, &entry)

		if aDie == nil && dDie == nil {
			if len(entry.Details) > 0 {
				logs = append(logs, entry)
			}
			break
		}
		if dDie == nil {
			e.resolveUncontested(attackerSide, att, aDie, def.unit, &entry)
			logs = append(logs, entry)
			continue
		}
		if aDie == nil {
			e.resolveUncontested(1-attackerSide, def, dDie, att.unit, &entry)
			logs = append(logs, entry)
			continue
		}

		attCtx := e.CreateRollContext(att.unit, def.unit, aDie, att.disadvantage)
		defCtx := e.CreateRollContext(def.unit, att.unit, dDie, def.disadvantage)
		attCtx.Opponent, defCtx.Opponent = defCtx, attCtx

		e.resolveExchange(attackerSide, att, def, attCtx, defCtx, &entry)
		logs = append(logs, entry)
	}

	e.finishSide(att)
	e.finishSide(def)
	return logs
}

// resolveExchange settles one rolled pair: defensive stand-offs, draws,
// then the winner-type x loser-type effect matrix. Shared between the
// clash loop and one-sided counter-clashes.
func (e *Engine) resolveExchange(attackerSide int, att, def *clashSide, attCtx, defCtx *RollContext, entry *LogEntry) {
	e.fillClashEntry(attackerSide, attCtx, defCtx, entry)

	if attCtx.Die.Type.IsDefensive() && defCtx.Die.Type.IsDefensive() {
		entry.Outcome = "defensive clash"
		return
	}

	av, dv := attCtx.Total(), defCtx.Total()
	if av == dv {
		entry.Outcome = "draw"
		e.triggerClashDraw(attCtx, defCtx)
		e.triggerClashDraw(defCtx, attCtx)
		return
	}

	winCtx, loseCtx := attCtx, defCtx
	winSide, loseSide := att, def
	if dv > av {
		winCtx, loseCtx = defCtx, attCtx
		winSide, loseSide = def, att
	}
	entry.Outcome = winCtx.Source.Name + " wins the clash"

	e.triggerClashWin(winCtx, loseCtx)
	e.triggerClashLose(loseCtx, winCtx)
	e.runDieScripts(winCtx, "on_clash_win")
	e.runDieScripts(loseCtx, "on_clash_lose")

	switch {
	case winCtx.Die.Type.IsAttack() && loseCtx.Die.Type == game.DamageBlock:
		// The block soaks its value; the difference lands.
		winCtx.Add(-loseCtx.Total(), "blocked")
		e.ApplyDamage(winCtx, loseCtx.Source, winCtx.Die.Type, entry)
	case winCtx.Die.Type.IsAttack():
		// Beats an attack die or a failed evade at full value.
		e.ApplyDamage(winCtx, loseCtx.Source, winCtx.Die.Type, entry)
	case winCtx.Die.Type == game.DamageEvade:
		// A won evade recycles for the next exchange and steadies the
		// evader.
		winSide.pending = winCtx.Die
		winSide.pendingFromStorage = winSide.lastFromStorage
		winCtx.Source.RestoreStagger(winCtx.Total())
		entry.Add(winCtx.Source.Name + " evades and recovers " + strconv.Itoa(winCtx.Total()) + " stagger")
	case winCtx.Die.Type == game.DamageBlock:
		// The stopped attack rebounds as stagger damage on its owner.
		diff := winCtx.Total() - loseCtx.Total()
		entry.Add(loseCtx.Source.Name + "'s attack is stopped cold")
		e.applyStaggerLoss(loseSide.unit, diff, entry)
	}
}

// resolveUncontested handles a die with no opposing die inside a clash:
// attacks land as unopposed damage, an evade is saved for later rounds, a
// block is wasted with no effect.
func (e *Engine) resolveUncontested(side int, cs *clashSide, die *game.Die, target *game.Unit, entry *LogEntry) {
	if die.Type == game.DamageEvade {
		cs.unit.StoredDice = append(cs.unit.StoredDice, die.Clone())
		entry.Add(cs.unit.Name + " saves an evade die for later")
		return
	}
	if die.Type == game.DamageBlock {
		entry.Add(cs.unit.Name + "'s block meets no attack")
		return
	}
	ctx := e.CreateRollContext(cs.unit, target, die, cs.disadvantage)
	e.fillClashEntry(side, ctx, nil, entry)
	entry.Outcome = "unopposed hit"
	e.ApplyDamage(ctx, target, die.Type, entry)
}

// fillClashEntry maps attacker/defender contexts onto the log's fixed
// left/right columns.
func (e *Engine) fillClashEntry(attackerSide int, attCtx, defCtx *RollContext, entry *LogEntry) {
	if attackerSide == 0 {
		entry.Left, entry.Right = actorLog(attCtx), actorLog(defCtx)
	} else {
		entry.Left, entry.Right = actorLog(defCtx), actorLog(attCtx)
	}
}

// finishSide closes out a side after resolution: unused evade dice in the
// queue, and a still-armed recycled evade that came out of storage, are
// kept in stored dice for future rounds. Everything else is discarded.
func (e *Engine) finishSide(cs *clashSide) {
	if cs.pending != nil && cs.pending.Type == game.DamageEvade && cs.pendingFromStorage {
		cs.unit.StoredDice = append(cs.unit.StoredDice, cs.pending.Clone())
		cs.pending = nil
	}
	for ; cs.idx < len(cs.queue); cs.idx++ {
		if cs.queue[cs.idx].Type == game.DamageEvade {
			cs.unit.StoredDice = append(cs.unit.StoredDice, cs.queue[cs.idx].Clone())
		}
	}
	if cs.slot != nil {
		cs.slot.Consumed = true
	}
	cs.unit.CurrentCard = nil
}
