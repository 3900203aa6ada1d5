package control

import (
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/physics"
	"github.com/lixenwraith/golden-sieve/timeline"
)

// Condition is the mission status headline for a control snapshot
type Condition uint8

const (
	ConditionMissionLock Condition = iota
	ConditionAutoSequence
	ConditionDriveDrift
	ConditionEvaporation
	ConditionFlareImpact
)

var conditionNames = [...]string{
	ConditionMissionLock:  "MISSION_LOCK",
	ConditionAutoSequence: "AUTO_SEQUENCE",
	ConditionDriveDrift:   "DRIVE_DRIFT",
	ConditionEvaporation:  "EVAPORATION",
	ConditionFlareImpact:  "FLARE_IMPACT",
}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return "UNKNOWN"
}

// Grade is the audit severity of a snapshot
type Grade uint8

const (
	GradeOK Grade = iota
	GradeInfo
	GradeWarn
	GradeError
	GradeCritical
)

var gradeNames = [...]string{"OK", "INFO", "WARN", "ERROR", "CRITICAL"}

func (g Grade) String() string {
	if int(g) < len(gradeNames) {
		return gradeNames[g]
	}
	return "UNKNOWN"
}

// Assessment pairs the status headline with the audit grade
type Assessment struct {
	Condition Condition
	Grade     Grade
}

// Assess classifies a snapshot; first match wins in both ladders
func Assess(s State) Assessment {
	r := s.Regime()

	var c Condition
	switch {
	case s.RadiationBurst:
		c = ConditionFlareImpact
	case s.AutoAdvance:
		c = ConditionAutoSequence
	case s.TimingJitter > parameter.JitterThreshold:
		c = ConditionEvaporation
	case physics.Drifting(r.Detuning):
		c = ConditionDriveDrift
	default:
		c = ConditionMissionLock
	}

	var g Grade
	switch {
	case s.RadiationBurst:
		g = GradeCritical
	case r.Heating:
		g = GradeError
	case s.TimingJitter > parameter.WarnJitter || r.Detuning > parameter.WarnDetuning:
		g = GradeWarn
	case s.ViewMode == timeline.ViewFourD:
		g = GradeInfo
	default:
		g = GradeOK
	}

	return Assessment{Condition: c, Grade: g}
}

// OffResonance reports whether a snap-to-phi correction is worth offering
func OffResonance(s State) bool {
	return s.Regime().Detuning > parameter.SnapDetuning
}
