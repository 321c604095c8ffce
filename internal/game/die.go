package game

import "strconv"

// ScriptRef names a scripted effect attached to a card or die. Unknown
// script ids are ignored at resolution time, never fatal.
type ScriptRef struct {
	ScriptID string             `json:"script_id"`
	Params   map[string]float64 `json:"params,omitempty"`
}

// Die is the basic combat value object. It is immutable once rolled except
// for type-conversion scripts that may rewrite Type mid-combat.
type Die struct {
	Min       int                    `json:"min"`
	Max       int                    `json:"max"`
	Type      DamageType             `json:"type"`
	IsCounter bool                   `json:"is_counter,omitempty"`
	Scripts   map[string][]ScriptRef `json:"scripts,omitempty"`
}

// NewDie builds a die, swapping bounds when authored content violates
// min <= max rather than rejecting it.
func NewDie(min, max int, t DamageType) Die {
	if min > max {
		min, max = max, min
	}
	return Die{Min: min, Max: max, Type: t}
}

// Range renders the die bounds for logs, e.g. "4-7".
func (d Die) Range() string {
	return strconv.Itoa(d.Min) + "-" + strconv.Itoa(d.Max)
}

// Clone deep-copies the die including its script table.
func (d Die) Clone() Die {
	out := d
	if d.Scripts != nil {
		out.Scripts = make(map[string][]ScriptRef, len(d.Scripts))
		for trigger, refs := range d.Scripts {
			cp := make([]ScriptRef, len(refs))
			for i, r := range refs {
				cp[i] = r.clone()
			}
			out.Scripts[trigger] = cp
		}
	}
	return out
}

func (r ScriptRef) clone() ScriptRef {
	out := r
	if r.Params != nil {
		out.Params = make(map[string]float64, len(r.Params))
		for k, v := range r.Params {
			out.Params[k] = v
		}
	}
	return out
}
