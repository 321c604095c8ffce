package game

// Card is an ordered list of dice plus scripted triggers. Cards live in a
// library keyed by id; units reference them by id and receive deep clones
// when a card is fetched for play, so in-combat mutation (dynamic dice
// count, die type conversion) never corrupts the library original.
type Card struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Tier        int                    `json:"tier"`
	Type        CardType               `json:"type"`
	Description string                 `json:"description,omitempty"`
	Flags       []string               `json:"flags,omitempty"`
	Scripts     map[string][]ScriptRef `json:"scripts,omitempty"`
	Dice        []Die                  `json:"dice"`
	Cooldown    int                    `json:"cooldown,omitempty"`
}

// HasFlag reports whether the card carries the named flag.
func (c *Card) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to mutate during resolution.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	out := *c
	if c.Flags != nil {
		out.Flags = append([]string(nil), c.Flags...)
	}
	if c.Dice != nil {
		out.Dice = make([]Die, len(c.Dice))
		for i, d := range c.Dice {
			out.Dice[i] = d.Clone()
		}
	}
	if c.Scripts != nil {
		out.Scripts = make(map[string][]ScriptRef, len(c.Scripts))
		for trigger, refs := range c.Scripts {
			cp := make([]ScriptRef, len(refs))
			for i, r := range refs {
				cp[i] = r.clone()
			}
			out.Scripts[trigger] = cp
		}
	}
	return &out
}
