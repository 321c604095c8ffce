package service

import (
	"github.com/librozavisim/lor-simulator/internal/game"
)

// Plan assigns one card to one rolled slot during planning.
type Plan struct {
	Side           int    `json:"side"`
	Unit           int    `json:"unit"`
	Slot           int    `json:"slot"`
	CardID         string `json:"card_id"`
	TargetUnit     int    `json:"target_unit"`
	TargetSlot     int    `json:"target_slot"`
	IsAggro        bool   `json:"is_aggro"`
	DestroyOnSpeed bool   `json:"destroy_on_speed"`
}

// SubmitPlan validates and applies a single slot plan. Cooldown starts at
// submission: swapping the card back out within the same planning phase is
// deliberately not supported.
func (s *Service) SubmitPlan(id string, p Plan) (*Battle, error) {
	b, err := s.loadBattle(id)
	if err != nil {
		return nil, err
	}
	if b.Phase == PhaseDone {
		return nil, ErrBattleOver
	}
	if b.Phase != PhasePlanning {
		return nil, ErrNotPlanning
	}

	team := b.Left
	if p.Side != 0 {
		team = b.Right
	}
	if p.Unit < 0 || p.Unit >= len(team) {
		return nil, ErrUnknownUnit
	}
	u := team[p.Unit]
	if p.Slot < 0 || p.Slot >= len(u.ActiveSlots) {
		return nil, ErrUnknownSlot
	}
	slot := u.ActiveSlots[p.Slot]
	if slot.Stunned {
		return nil, ErrSlotStunned
	}

	if !inDeck(u, p.CardID) {
		return nil, ErrCardNotInDeck
	}
	card := s.reg.FetchCard(p.CardID)
	if card == nil {
		return nil, ErrUnknownCard
	}
	if len(u.CardCooldowns[p.CardID]) > 0 {
		return nil, ErrCardOnCooldown
	}

	slot.Card = card
	slot.TargetUnit = p.TargetUnit
	slot.TargetSlot = p.TargetSlot
	slot.IsAggro = p.IsAggro
	slot.DestroyOnSpeed = p.DestroyOnSpeed
	if card.Cooldown > 0 {
		u.CardCooldowns[p.CardID] = append(u.CardCooldowns[p.CardID], card.Cooldown)
	}

	if err := s.saveBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

func inDeck(u *game.Unit, cardID string) bool {
	for _, id := range u.Deck {
		if id == cardID {
			return true
		}
	}
	return false
}
