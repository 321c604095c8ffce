package engine

// ActorLog describes one side of an exchange in the structured combat log.
// This schema is the de facto wire format consumed by the UI layer.
type ActorLog struct {
	Unit  string `json:"unit"`
	Card  string `json:"card,omitempty"`
	Die   string `json:"die,omitempty"`
	Value int    `json:"val"`
	Range string `json:"range,omitempty"`
}

// LogEntry is one resolved exchange or event. Clash entries carry both
// sides; event entries only a round and details.
type LogEntry struct {
	Round   int       `json:"round"`
	Left    *ActorLog `json:"left,omitempty"`
	Right   *ActorLog `json:"right,omitempty"`
	Outcome string    `json:"outcome,omitempty"`
	Details []string  `json:"details,omitempty"`
}

// Add appends a detail line.
func (l *LogEntry) Add(detail string) {
	l.Details = append(l.Details, detail)
}

// event builds a plain event entry for the current round.
func (e *Engine) event(details ...string) LogEntry {
	return LogEntry{Round: e.round, Details: details}
}

// actorLog snapshots one side of an exchange from a roll context.
func actorLog(ctx *RollContext) *ActorLog {
	if ctx == nil {
		return nil
	}
	al := &ActorLog{Unit: ctx.Source.Name, Value: ctx.Total()}
	if ctx.Card != nil {
		al.Card = ctx.Card.Name
	}
	if ctx.Die != nil {
		al.Die = string(ctx.Die.Type)
		al.Range = ctx.Die.Range()
	}
	return al
}
