package tuning

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"hillsim.ai/internal/sim/world"
)

//go:embed tuning.schema.json
var schemaJSON string

type Tuning struct {
	MaxTimeStep        float64 `yaml:"max_time_step" json:"max_time_step"`
	FallSpeed          float64 `yaml:"fall_speed" json:"fall_speed"`
	FallDamagePerLevel int     `yaml:"fall_damage_per_level" json:"fall_damage_per_level"`
	RestInterval       float64 `yaml:"rest_interval" json:"rest_interval"`
	WorkBase           float64 `yaml:"work_base" json:"work_base"`
	FightDuration      float64 `yaml:"fight_duration" json:"fight_duration"`
	SprintStaminaDrain float64 `yaml:"sprint_stamina_drain" json:"sprint_stamina_drain"`

	Experience Experience `yaml:"experience" json:"experience"`

	CaveInDropChance float64 `yaml:"cave_in_drop_chance" json:"cave_in_drop_chance"`
	MaxUnits         int     `yaml:"max_units" json:"max_units"`
	MaxFactions      int     `yaml:"max_factions" json:"max_factions"`
	WorkshopBonus    int     `yaml:"workshop_bonus" json:"workshop_bonus"`
	PathMaxNodes     int     `yaml:"path_max_nodes" json:"path_max_nodes"`
}

type Experience struct {
	PerStep   int `yaml:"per_step" json:"per_step"`
	PerWork   int `yaml:"per_work" json:"per_work"`
	PerCombat int `yaml:"per_combat" json:"per_combat"`
	PerLevel  int `yaml:"per_level" json:"per_level"`
}

func Defaults() Tuning {
	return Tuning{
		MaxTimeStep:        0.2,
		FallSpeed:          3,
		FallDamagePerLevel: 10,
		RestInterval:       180,
		WorkBase:           500,
		FightDuration:      1,
		SprintStaminaDrain: 10,
		Experience: Experience{
			PerStep:   1,
			PerWork:   20,
			PerCombat: 20,
			PerLevel:  10,
		},
		CaveInDropChance: 0.25,
		MaxUnits:         100,
		MaxFactions:      5,
		WorkshopBonus:    5,
	}
}

// applyDefaults fills fields left at zero. Fields where zero is meaningful
// (fall damage, drop chance, path budget) keep whatever the file said.
func (t *Tuning) applyDefaults(present map[string]any) {
	d := Defaults()
	if t.MaxTimeStep <= 0 {
		t.MaxTimeStep = d.MaxTimeStep
	}
	if t.FallSpeed <= 0 {
		t.FallSpeed = d.FallSpeed
	}
	if _, ok := present["fall_damage_per_level"]; !ok {
		t.FallDamagePerLevel = d.FallDamagePerLevel
	}
	if t.RestInterval <= 0 {
		t.RestInterval = d.RestInterval
	}
	if t.WorkBase <= 0 {
		t.WorkBase = d.WorkBase
	}
	if t.FightDuration <= 0 {
		t.FightDuration = d.FightDuration
	}
	if t.SprintStaminaDrain <= 0 {
		t.SprintStaminaDrain = d.SprintStaminaDrain
	}
	if t.Experience.PerStep <= 0 {
		t.Experience.PerStep = d.Experience.PerStep
	}
	if t.Experience.PerWork <= 0 {
		t.Experience.PerWork = d.Experience.PerWork
	}
	if t.Experience.PerCombat <= 0 {
		t.Experience.PerCombat = d.Experience.PerCombat
	}
	if t.Experience.PerLevel <= 0 {
		t.Experience.PerLevel = d.Experience.PerLevel
	}
	if _, ok := present["cave_in_drop_chance"]; !ok {
		t.CaveInDropChance = d.CaveInDropChance
	}
	if t.MaxUnits <= 0 {
		t.MaxUnits = d.MaxUnits
	}
	if t.MaxFactions <= 0 {
		t.MaxFactions = d.MaxFactions
	}
	if _, ok := present["workshop_bonus"]; !ok {
		t.WorkshopBonus = d.WorkshopBonus
	}
}

var schema = jsonschema.MustCompileString("tuning.schema.json", schemaJSON)

func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	return Parse(raw)
}

// Parse decodes YAML tuning, validates it against the embedded schema and
// fills unset fields with defaults.
func Parse(raw []byte) (Tuning, error) {
	var t Tuning

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	// Round-trip through JSON so the validator sees JSON-native types.
	js, err := json.Marshal(doc)
	if err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	var inst any
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	if err := dec.Decode(&inst); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}

	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	present, _ := inst.(map[string]any)
	t.applyDefaults(present)
	return t, nil
}

func (t Tuning) WorldConfig() world.Config {
	return world.Config{
		MaxTimeStep:        t.MaxTimeStep,
		FallSpeed:          t.FallSpeed,
		FallDamagePerLevel: t.FallDamagePerLevel,
		RestInterval:       t.RestInterval,
		WorkBase:           t.WorkBase,
		FightDuration:      t.FightDuration,
		SprintStaminaDrain: t.SprintStaminaDrain,
		ExpPerStep:         t.Experience.PerStep,
		ExpPerWork:         t.Experience.PerWork,
		ExpPerCombat:       t.Experience.PerCombat,
		ExpPerLevel:        t.Experience.PerLevel,
		CaveInDropChance:   t.CaveInDropChance,
		MaxUnits:           t.MaxUnits,
		MaxFactions:        t.MaxFactions,
		WorkshopBonus:      t.WorkshopBonus,
		PathMaxNodes:       t.PathMaxNodes,
	}
}
