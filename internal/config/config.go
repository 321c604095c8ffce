package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/librozavisim/lor-simulator/internal/game"
)

// Settings is the process configuration, parsed from the environment.
type Settings struct {
	Address         string        `env:"LOR_ADDRESS" envDefault:":8080"`
	DatabaseDSN     string        `env:"LOR_DB_PATH" envDefault:"lor.db"`
	ContentPath     string        `env:"LOR_CONTENT_PATH" envDefault:"content/content.json"`
	Seed            int64         `env:"LOR_SEED"`
	Debug           bool          `env:"LOR_DEBUG"`
	PlanningTimeout time.Duration `env:"LOR_PLAN_TIMEOUT" envDefault:"5m"`
}

// LoadSettings parses the environment into Settings.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return s, nil
}

type unitEntry struct {
	Name          string                      `json:"name"`
	Level         int                         `json:"level"`
	Attributes    map[string]int              `json:"attributes"`
	Skills        map[string]int              `json:"skills"`
	Resistances   map[game.DamageType]float64 `json:"resistances"`
	Passives      []string                    `json:"passives"`
	Talents       []string                    `json:"talents"`
	Augmentations []string                    `json:"augmentations"`
	WeaponID      string                      `json:"weapon_id"`
	Deck          []string                    `json:"deck"`
}

type rawContent struct {
	Cards   []*game.Card  `json:"cards"`
	Weapons []game.Weapon `json:"weapons"`
	Units   []unitEntry   `json:"units"`
}

// LoadedContent holds the validated game content a process serves.
type LoadedContent struct {
	Cards   []*game.Card
	Weapons []game.Weapon
	Units   []*game.Unit
}

// LoadContent reads and validates the content file at path. It requires a
// non-empty `cards` array and checks cross-references: unit decks and
// weapons must name registered ids, card dice must carry a known type.
func LoadContent(path string) (*LoadedContent, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	var rc rawContent
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}

	if len(rc.Cards) == 0 {
		return nil, fmt.Errorf("content file %s: cards is empty (provide 'cards' array)", path)
	}

	cardSet := make(map[string]struct{}, len(rc.Cards))
	for _, c := range rc.Cards {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("content file %s: card missing 'id'", path)
		}
		if _, exists := cardSet[c.ID]; exists {
			return nil, fmt.Errorf("content file %s: duplicate card id '%s'", path, c.ID)
		}
		cardSet[c.ID] = struct{}{}
		if c.Type != game.CardOnPlay && c.Type != game.CardItem && len(c.Dice) == 0 {
			return nil, fmt.Errorf("content file %s: card '%s' has no dice", path, c.ID)
		}
		for i, d := range c.Dice {
			switch d.Type {
			case game.DamageSlash, game.DamagePierce, game.DamageBlunt, game.DamageBlock, game.DamageEvade:
			default:
				return nil, fmt.Errorf("content file %s: card '%s' die %d has unknown type '%s'", path, c.ID, i, d.Type)
			}
			if d.Min > d.Max {
				c.Dice[i].Min, c.Dice[i].Max = d.Max, d.Min
			}
		}
	}

	weaponSet := make(map[string]struct{}, len(rc.Weapons))
	for _, w := range rc.Weapons {
		if strings.TrimSpace(w.ID) == "" {
			return nil, fmt.Errorf("content file %s: weapon missing 'id'", path)
		}
		if _, exists := weaponSet[w.ID]; exists {
			return nil, fmt.Errorf("content file %s: duplicate weapon id '%s'", path, w.ID)
		}
		weaponSet[w.ID] = struct{}{}
		if w.Class.PowerMod() == "" {
			return nil, fmt.Errorf("content file %s: weapon '%s' has unknown class '%s'", path, w.ID, w.Class)
		}
	}

	units := make([]*game.Unit, 0, len(rc.Units))
	for _, entry := range rc.Units {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("content file %s: unit missing 'name'", path)
		}
		if entry.WeaponID != "" {
			if _, ok := weaponSet[entry.WeaponID]; !ok {
				return nil, fmt.Errorf("content file %s: unit '%s' references unknown weapon '%s'", path, entry.Name, entry.WeaponID)
			}
		}
		for _, id := range entry.Deck {
			if _, ok := cardSet[id]; !ok {
				return nil, fmt.Errorf("content file %s: unit '%s' deck references unknown card '%s'", path, entry.Name, id)
			}
		}
		u := game.NewUnit(entry.Name, entry.Level)
		for k, v := range entry.Attributes {
			u.Attributes[k] = v
		}
		for k, v := range entry.Skills {
			u.Skills[k] = v
		}
		for k, v := range entry.Resistances {
			u.Resistances[k] = v
		}
		u.Passives = entry.Passives
		u.Talents = entry.Talents
		u.Augmentations = entry.Augmentations
		u.WeaponID = entry.WeaponID
		u.Deck = entry.Deck
		units = append(units, u)
	}

	return &LoadedContent{Cards: rc.Cards, Weapons: rc.Weapons, Units: units}, nil
}
