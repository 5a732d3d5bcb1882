package world

type Config struct {
	// MaxTimeStep is the largest dt AdvanceTime accepts, in seconds.
	MaxTimeStep float64
	// FallSpeed is in cubes per second.
	FallSpeed          float64
	FallDamagePerLevel int
	// RestInterval is the lifetime period after which a unit is sent to rest.
	RestInterval       float64
	WorkBase           float64
	FightDuration      float64
	SprintStaminaDrain float64

	ExpPerStep   int
	ExpPerWork   int
	ExpPerCombat int
	ExpPerLevel  int

	CaveInDropChance float64
	MaxUnits         int
	MaxFactions      int
	WorkshopBonus    int
	// PathMaxNodes bounds route searches; 0 means the whole world.
	PathMaxNodes int
}

func DefaultConfig() Config {
	return Config{
		MaxTimeStep:        0.2,
		FallSpeed:          3,
		FallDamagePerLevel: 10,
		RestInterval:       180,
		WorkBase:           500,
		FightDuration:      1,
		SprintStaminaDrain: 10,
		ExpPerStep:         1,
		ExpPerWork:         20,
		ExpPerCombat:       20,
		ExpPerLevel:        10,
		CaveInDropChance:   0.25,
		MaxUnits:           100,
		MaxFactions:        5,
		WorkshopBonus:      5,
	}
}

// applyDefaults only touches fields for which zero is not a usable value.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.MaxTimeStep <= 0 {
		c.MaxTimeStep = d.MaxTimeStep
	}
	if c.FallSpeed <= 0 {
		c.FallSpeed = d.FallSpeed
	}
	if c.FallDamagePerLevel < 0 {
		c.FallDamagePerLevel = 0
	}
	if c.RestInterval <= 0 {
		c.RestInterval = d.RestInterval
	}
	if c.WorkBase <= 0 {
		c.WorkBase = d.WorkBase
	}
	if c.FightDuration <= 0 {
		c.FightDuration = d.FightDuration
	}
	if c.SprintStaminaDrain <= 0 {
		c.SprintStaminaDrain = d.SprintStaminaDrain
	}
	if c.ExpPerStep <= 0 {
		c.ExpPerStep = d.ExpPerStep
	}
	if c.ExpPerWork <= 0 {
		c.ExpPerWork = d.ExpPerWork
	}
	if c.ExpPerCombat <= 0 {
		c.ExpPerCombat = d.ExpPerCombat
	}
	if c.ExpPerLevel <= 0 {
		c.ExpPerLevel = d.ExpPerLevel
	}
	if c.CaveInDropChance < 0 {
		c.CaveInDropChance = 0
	}
	if c.CaveInDropChance > 1 {
		c.CaveInDropChance = 1
	}
	if c.MaxUnits <= 0 {
		c.MaxUnits = d.MaxUnits
	}
	if c.MaxFactions <= 0 {
		c.MaxFactions = d.MaxFactions
	}
	if c.WorkshopBonus < 0 {
		c.WorkshopBonus = 0
	}
	if c.PathMaxNodes < 0 {
		c.PathMaxNodes = 0
	}
}
