package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/librozavisim/lor-simulator/internal/config"
	"github.com/librozavisim/lor-simulator/internal/constants"
	"github.com/librozavisim/lor-simulator/internal/engine"
	"github.com/librozavisim/lor-simulator/internal/game"
	"github.com/librozavisim/lor-simulator/internal/mechanics"
	"github.com/librozavisim/lor-simulator/internal/scripts"
	"github.com/librozavisim/lor-simulator/internal/service"
	"github.com/librozavisim/lor-simulator/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	repo := storage.NewSQLiteRepository(db)

	jab := &game.Card{ID: "jab", Name: "Jab", Type: game.CardMelee,
		Dice: []game.Die{game.NewDie(3, 3, game.DamageSlash)}}
	cleave := &game.Card{ID: "cleave", Name: "Cleave", Type: game.CardMelee,
		Dice: []game.Die{game.NewDie(4, 4, game.DamageSlash)}}

	mkUnit := func(name string) *game.Unit {
		u := game.NewUnit(name, 1)
		u.Skills[game.SkillSpeed] = 5
		u.Deck = []string{"jab", "cleave"}
		return u
	}
	templates := []*game.Unit{mkUnit("Aria"), mkUnit("Bram")}

	b := engine.NewRegistryBuilder()
	mechanics.Register(b)
	scripts.Register(b)
	b.AddCard(jab)
	b.AddCard(cleave)

	content := &config.LoadedContent{Cards: []*game.Card{jab, cleave}, Units: templates}
	svc := service.New(repo, b.Build(), templates, 7)

	r := gin.New()
	NewBattleHandler(svc, content).RegisterRoutes(r.Group(constants.RouteAPIPrefix))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCreateBattleEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/battles", CreateBattleRequest{Left: []string{"Aria"}, Right: []string{"Bram"}})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["id"] == "" || body["phase"] != service.PhaseRoll {
		t.Errorf("body = %v, want an id and the roll phase", body)
	}
}

func TestCreateBattleRejectsEmptyTeams(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/battles", CreateBattleRequest{Left: []string{"Aria"}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetBattleNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/battles/no-such-id", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if decode(t, w)[constants.JSONKeyError] != constants.ErrBattleNotFound {
		t.Errorf("body = %s, want the battle-not-found message", w.Body.String())
	}
}

func TestBattleLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/battles", CreateBattleRequest{Left: []string{"Aria"}, Right: []string{"Bram"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	id := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/speed", nil)
	if w.Code != http.StatusOK || decode(t, w)["phase"] != service.PhasePlanning {
		t.Fatalf("speed: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/plan", service.Plan{Side: 0, CardID: "cleave"})
	if w.Code != http.StatusOK {
		t.Fatalf("plan: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/plan", service.Plan{Side: 1, CardID: "jab"})
	if w.Code != http.StatusOK {
		t.Fatalf("plan: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/resolve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resolve: %d %s", w.Code, w.Body.String())
	}
	resolved := decode(t, w)
	if resolved["phase"] != service.PhaseRoll || resolved["round"] != float64(2) {
		t.Errorf("after resolve: %v, want roll phase round 2", resolved)
	}

	w = do(t, r, http.MethodGet, "/api/battles/"+id+"/log", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("log: %d", w.Code)
	}
	if entries, ok := decode(t, w)["log"].([]any); !ok || len(entries) == 0 {
		t.Error("log endpoint returned no entries")
	}

	w = do(t, r, http.MethodGet, "/api/battles/"+id+"/snapshots", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("snapshots: %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/rewind", RewindRequest{Round: 1})
	if w.Code != http.StatusOK {
		t.Fatalf("rewind: %d %s", w.Code, w.Body.String())
	}
	rewound := decode(t, w)
	if rewound["phase"] != service.PhaseRoll || rewound["round"] != float64(1) {
		t.Errorf("after rewind: %v, want roll phase round 1", rewound)
	}
}

func TestSubmitPlanWrongPhase(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/battles", CreateBattleRequest{Left: []string{"Aria"}, Right: []string{"Bram"}})
	id := decode(t, w)["id"].(string)

	w = do(t, r, http.MethodPost, "/api/battles/"+id+"/plan", service.Plan{CardID: "jab"})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 before speed is rolled", w.Code)
	}
}

func TestContentEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/cards", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cards: %d", w.Code)
	}
	var cards []any
	if err := json.Unmarshal(w.Body.Bytes(), &cards); err != nil || len(cards) != 2 {
		t.Errorf("cards = %s, want 2 entries", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/units", nil)
	if w.Code != http.StatusOK {
		t.Errorf("units: %d", w.Code)
	}
}
