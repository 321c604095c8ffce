package engine

import (
	"strconv"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// PrepareTurn opens a round once both teams' slots carry their plans: round
// triggers fire, interception is resolved in both directions, and the
// action queue is built. The caller then drains the queue through
// ExecuteSingleAction.
func (e *Engine) PrepareTurn(left, right []*game.Unit) ([]LogEntry, []Action) {
	e.left, e.right = left, right

	var logs []LogEntry
	logs = append(logs, e.event("round "+strconv.Itoa(e.round)+" begins"))
	for _, u := range left {
		e.triggerRoundStart(u)
	}
	for _, u := range right {
		e.triggerRoundStart(u)
	}

	e.CalculateRedirections(left, right)
	e.CalculateRedirections(right, left)

	return logs, e.buildActionQueue()
}

// ExecuteSingleAction resolves one queue entry. Slots consumed earlier in
// the round (a clash handles both sides at once) are skipped via the
// executed map, which the caller owns so it can interleave external
// inspection between actions.
func (e *Engine) ExecuteSingleAction(a Action, executed map[SlotKey]bool) []LogEntry {
	key := SlotKey{Side: a.Side, Unit: a.Unit, Slot: a.Slot}
	if executed[key] {
		return nil
	}
	actors := e.team(a.Side)
	if a.Unit >= len(actors) {
		return nil
	}
	u := actors[a.Unit]
	if u.IsDead() || a.Slot >= len(u.ActiveSlots) {
		return nil
	}
	slot := u.ActiveSlots[a.Slot]
	if slot.Card == nil || slot.Stunned || slot.Consumed {
		return nil
	}
	executed[key] = true

	switch slot.Card.Type {
	case game.CardOnPlay, game.CardItem:
		return e.executeOnPlay(u, slot, a.Side)
	case game.CardMassSummation:
		return e.massSummation(a.Side, u, slot)
	case game.CardMassIndividual:
		return e.massIndividual(a.Side, u, slot)
	}

	if !slot.HasTarget() {
		slot.Consumed = true
		return []LogEntry{e.event(u.Name + " has no target")}
	}
	enemies := e.team(1 - a.Side)
	if slot.TargetUnit >= len(enemies) {
		slot.Consumed = true
		return nil
	}
	target := enemies[slot.TargetUnit]
	var tSlot *game.ActiveSlot
	if slot.TargetSlot < len(target.ActiveSlots) {
		tSlot = target.ActiveSlots[slot.TargetSlot]
	}

	if e.isClash(a.Side, slot, a.Unit, a.Slot, target, tSlot, executed) {
		tKey := SlotKey{Side: 1 - a.Side, Unit: slot.TargetUnit, Slot: slot.TargetSlot}
		executed[tKey] = true
		att := e.newClashSide(u, slot)
		def := e.newClashSide(target, tSlot)
		return e.resolveClashPair(a.Side, att, def)
	}

	att := e.newClashSide(u, slot)
	return e.resolveOneSided(a.Side, att, target, tSlot)
}

// isClash decides clash versus one-sided for an acting slot: a redirection
// winner clashes, a redirection loser never does, otherwise mutual
// targeting clashes when the opposing card is still live.
func (e *Engine) isClash(side int, slot *game.ActiveSlot, ui, si int, target *game.Unit, tSlot *game.ActiveSlot, executed map[SlotKey]bool) bool {
	if slot.ForceOneSided {
		return false
	}
	if tSlot == nil || tSlot.Card == nil || tSlot.Consumed || tSlot.Stunned || target.IsDead() {
		return false
	}
	if executed[SlotKey{Side: 1 - side, Unit: slot.TargetUnit, Slot: slot.TargetSlot}] {
		return false
	}
	if slot.ForceClash {
		return true
	}
	return tSlot.HasTarget() && tSlot.TargetUnit == ui && tSlot.TargetSlot == si
}

// executeOnPlay runs a card that is pure effect: its on_play scripts fire
// against the declared target (or the caster for friendly cards) and no
// dice resolve.
func (e *Engine) executeOnPlay(u *game.Unit, slot *game.ActiveSlot, side int) []LogEntry {
	target := u
	if !slot.Card.HasFlag(game.FlagFriendly) && slot.HasTarget() {
		enemies := e.team(1 - side)
		if slot.TargetUnit < len(enemies) {
			target = enemies[slot.TargetUnit]
		}
	}
	u.CurrentCard = slot.Card
	ctx := &RollContext{Source: u, Target: target, Card: slot.Card, DamageMultiplier: 1.0}
	e.runCardScripts(ctx, "on_play")
	u.CurrentCard = nil
	slot.Consumed = true

	entry := e.event(u.Name + " plays " + slot.Card.Name)
	entry.Details = append(entry.Details, ctx.Log...)
	return []LogEntry{entry}
}

// massSummation rolls the card's attack dice once, sums the totals, and
// throws the combined value at every living enemy. Each enemy may answer
// with a single stored or counter die; a winning defensive answer negates
// the whole hit for that enemy.
func (e *Engine) massSummation(side int, u *game.Unit, slot *game.ActiveSlot) []LogEntry {
	var logs []LogEntry
	enemies := e.team(1 - side)
	primary := firstAlive(enemies)
	if primary == nil {
		slot.Consumed = true
		return logs
	}

	u.CurrentCard = slot.Card
	queue := e.bankCounterDice(u, slot.Card)

	total := 0
	var dmgType game.DamageType
	var leadDie *game.Die
	rollEntry := e.event(u.Name + " unleashes " + slot.Card.Name)
	for i := range queue {
		if !queue[i].Type.IsAttack() {
			continue
		}
		ctx := e.CreateRollContext(u, primary, &queue[i], false)
		total += ctx.Total()
		if dmgType == "" {
			dmgType = queue[i].Type
			leadDie = &queue[i]
		}
		rollEntry.Details = append(rollEntry.Details, ctx.Log...)
	}
	logs = append(logs, rollEntry)
	if dmgType == "" {
		slot.Consumed = true
		u.CurrentCard = nil
		return logs
	}

	for _, enemy := range enemies {
		if enemy.IsDead() || u.IsDead() {
			continue
		}
		entry := LogEntry{Round: e.round}
		// The summed hit carries the lead attack die: die-conditioned
		// damage filters must always see a die.
		ctx := &RollContext{Source: u, Target: enemy, Card: slot.Card, Die: leadDie, BaseValue: total, DamageMultiplier: 1.0}

		defSide := &clashSide{unit: enemy}
		if dDie := e.nextDie(defSide, &entry); dDie != nil {
			defCtx := e.CreateRollContext(enemy, u, dDie, false)
			if defCtx.Total() >= total {
				entry.Outcome = enemy.Name + " withstands the onslaught"
				if dDie.Type == game.DamageEvade {
					enemy.RestoreStagger(defCtx.Total())
				}
				if dDie.Type.IsAttack() {
					e.ApplyDamage(defCtx, u, dDie.Type, &entry)
				}
				logs = append(logs, entry)
				continue
			}
			entry.Add(enemy.Name + "'s answer falls short")
		}
		e.ApplyDamage(ctx, enemy, dmgType, &entry)
		logs = append(logs, entry)
	}

	slot.Consumed = true
	u.CurrentCard = nil
	return logs
}

// massIndividual repeats the card's attack dice against each living enemy
// as an independent one-sided walk.
func (e *Engine) massIndividual(side int, u *game.Unit, slot *game.ActiveSlot) []LogEntry {
	var logs []LogEntry
	u.CurrentCard = slot.Card
	e.bankCounterDice(u, slot.Card)

	for _, enemy := range e.team(1 - side) {
		if enemy.IsDead() || u.IsDead() {
			continue
		}
		att := &clashSide{unit: u, slot: slot}
		for _, d := range slot.Card.Dice {
			if d.Type.IsAttack() && !d.IsCounter {
				att.queue = append(att.queue, d.Clone())
			}
		}
		logs = append(logs, e.resolveOneSided(side, att, enemy, nil)...)
		u.CurrentCard = slot.Card
	}

	slot.Consumed = true
	u.CurrentCard = nil
	return logs
}

// FinalizeTurn closes the round: end-of-round triggers, status decay and
// delayed activation, cooldown ticks, slot teardown, and the round counter.
func (e *Engine) FinalizeTurn() []LogEntry {
	var logs []LogEntry
	finish := func(team []*game.Unit) {
		for _, u := range team {
			e.triggerRoundEnd(u)
			e.ProcessTurnEnd(u)
			tickCooldowns(u)
			u.ActiveSlots = nil
			u.CounterDice = nil
		}
	}
	finish(e.left)
	finish(e.right)
	logs = append(logs, e.event("round "+strconv.Itoa(e.round)+" ends"))
	e.round++
	return logs
}

// ResolveTurn runs a full planned round: prepare, drain the action queue,
// finalize. Callers needing step-by-step control use the pieces directly.
func (e *Engine) ResolveTurn(left, right []*game.Unit) []LogEntry {
	logs, actions := e.PrepareTurn(left, right)
	executed := map[SlotKey]bool{}
	for _, a := range actions {
		logs = append(logs, e.ExecuteSingleAction(a, executed)...)
	}
	logs = append(logs, e.FinalizeTurn()...)
	return logs
}

func (e *Engine) team(side int) []*game.Unit {
	if side == 0 {
		return e.left
	}
	return e.right
}

func firstAlive(team []*game.Unit) *game.Unit {
	for _, u := range team {
		if !u.IsDead() {
			return u
		}
	}
	return nil
}

// tickCooldowns decrements every pending cooldown entry, dropping the ones
// that reach zero.
func tickCooldowns(u *game.Unit) {
	for id, cds := range u.CardCooldowns {
		kept := cds[:0]
		for _, c := range cds {
			if c-1 > 0 {
				kept = append(kept, c-1)
			}
		}
		if len(kept) == 0 {
			delete(u.CardCooldowns, id)
			continue
		}
		u.CardCooldowns[id] = kept
	}
}
