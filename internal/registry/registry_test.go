package registry

import (
	"testing"

	"github.com/vovakirdan/soundless/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return stubGame{id: "zz_stub"} })
	Register("aa_stub", func() Game { return stubGame{id: "aa_stub"} })

	if !Exists("zz_stub") || Exists("missing") {
		t.Fatal("Exists mismatch")
	}

	g, err := Create("aa_stub")
	if err != nil || g.ID() != "aa_stub" {
		t.Fatalf("Create = %v, %v", g, err)
	}
	if _, err := Create("missing"); err == nil {
		t.Error("unknown variant should fail")
	}

	list := List()
	if len(list) < 2 || list[0].ID != "aa_stub" || list[0].Title != "Stub aa_stub" {
		t.Errorf("List should be sorted with titles, got %+v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })
}
