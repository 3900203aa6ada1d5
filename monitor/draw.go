package monitor

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/golden-sieve/control"
	"github.com/lixenwraith/golden-sieve/engine"
	"github.com/lixenwraith/golden-sieve/parameter"
	"github.com/lixenwraith/golden-sieve/shard"
	"github.com/lixenwraith/golden-sieve/vmath"
)

// Layout
const (
	mapTop      = 2
	latticeLeft = 1
	shardLeft   = latticeLeft + parameter.GridSize + 2
	hudLeft     = shardLeft + parameter.GridSize + 3
	barWidth    = 24
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleValue   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHeat    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var gradeStyles = [...]tcell.Style{
	control.GradeOK:       tcell.StyleDefault.Foreground(tcell.ColorGreen),
	control.GradeInfo:     tcell.StyleDefault.Foreground(tcell.ColorAqua),
	control.GradeWarn:     tcell.StyleDefault.Foreground(tcell.ColorYellow),
	control.GradeError:    tcell.StyleDefault.Foreground(tcell.ColorOrange),
	control.GradeCritical: tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true),
}

// SnapHint is shown while the drive sits far enough from Phi for a snap to matter
const SnapHint = "g snap to Φ"

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Frame is everything one draw needs, copied out of the simulation
type Frame struct {
	Snapshot  *engine.Snapshot
	Forge     []float64
	Particles []shard.Particle
	Paused    bool
}

// Draw renders the lattice heat map, the shard convergence map and the HUD
func Draw(screen tcell.Screen, f Frame) {
	screen.Clear()
	snap := f.Snapshot
	if snap == nil {
		screen.Show()
		return
	}

	drawText(screen, latticeLeft, 0, styleTitle, "GOLDEN SIEVE")
	drawText(screen, latticeLeft, 1, styleLabel, "lattice")
	drawText(screen, shardLeft, 1, styleLabel, "shards")

	drawLattice(screen, snap, f.Forge)
	drawShards(screen, snap, f.Particles)
	drawHUD(screen, snap, f.Paused)

	drawText(screen, latticeLeft, mapTop+parameter.GridSize+1, styleLabel, KeyHelp)
	screen.Show()
}

// drawLattice colors sites by amplitude; glyph density follows the forge factor
func drawLattice(screen tcell.Screen, snap *engine.Snapshot, forge []float64) {
	for i := range snap.Sites {
		s := &snap.Sites[i]
		level := int32(vmath.MapLinear(s.Amplitude, parameter.AmplitudeMin, parameter.AmplitudeMax, 40, 255))

		var color tcell.Color
		if snap.Regime.Heating {
			color = tcell.NewRGBColor(level, level/4, level/6)
		} else {
			color = tcell.NewRGBColor(level, level*3/4, level/5)
		}

		glyph := '░'
		if i < len(forge) {
			switch {
			case forge[i] >= 1:
				glyph = '█'
			case forge[i] > 0:
				glyph = '▒'
			}
		}
		row, col := i/parameter.GridSize, i%parameter.GridSize
		screen.SetContent(latticeLeft+col, mapTop+row, glyph, nil, styleDefault.Foreground(color))
	}
}

// drawShards shades each site by how tightly its shards cluster above it
func drawShards(screen tcell.Screen, snap *engine.Snapshot, particles []shard.Particle) {
	if len(particles) != parameter.ShardCount {
		return
	}
	maxSpread := parameter.ShardOffsetHalfWidth * math.Sqrt2
	for sid := range snap.Sites {
		site := &snap.Sites[sid]
		var spread float64
		for local := 0; local < parameter.ShardsPerSite; local++ {
			p := &particles[shard.Index(sid, local)]
			spread += math.Hypot(p.Position.X-site.X, p.Position.Y-site.Y)
		}
		spread /= parameter.ShardsPerSite

		tight := 1 - vmath.Clamp(spread/maxSpread, 0, 1)
		level := int32(40 + tight*215)
		idx := int(tight * float64(len(sparkRunes)-1))
		row, col := sid/parameter.GridSize, sid%parameter.GridSize
		screen.SetContent(shardLeft+col, mapTop+row, sparkRunes[idx], nil,
			styleDefault.Foreground(tcell.NewRGBColor(level/3, level*2/3, level)))
	}
}

func drawHUD(screen tcell.Screen, snap *engine.Snapshot, paused bool) {
	st := snap.State
	y := mapTop

	line := func(label, value string, style tcell.Style) {
		drawText(screen, hudLeft, y, styleLabel, label)
		drawText(screen, hudLeft+12, y, style, value)
		y++
	}

	phase := st.Phase.String()
	if paused {
		phase += " (paused)"
	}
	line("phase", phase, styleTitle)
	line("progress", progressBar(st.Progress), styleValue)
	line("view", st.ViewMode.String(), styleValue)
	line("auto", fmt.Sprintf("%t", st.AutoAdvance), styleValue)
	y++

	line("U", fmt.Sprintf("%.2f", st.InteractionU), styleValue)
	line("V0", fmt.Sprintf("%.2f", st.PotentialDepth), styleValue)
	line("jitter", fmt.Sprintf("%.1f", st.TimingJitter), styleValue)
	line("omega", fmt.Sprintf("%.4f", st.DriveOmega), styleValue)
	line("detuning", fmt.Sprintf("%.4f", snap.Regime.Detuning), styleValue)
	line("resilience", fmt.Sprintf("%.3f", snap.Resilience), styleValue)
	line("shard scale", fmt.Sprintf("x%.2f", snap.ShardScale), styleValue)
	if snap.Regime.Heating {
		line("regime", "HEATING", styleHeat)
	} else {
		line("regime", "localized", styleValue)
	}
	y++

	grade := styleValue
	if g := snap.Assessment.Grade; int(g) < len(gradeStyles) {
		grade = gradeStyles[g]
	}
	line("status", snap.Assessment.Condition.String(), grade)
	line("audit", snap.Assessment.Grade.String(), grade)
	line("xi", fmt.Sprintf("%.3f", snap.Summary.MeanLocalization), styleValue)
	line("ipr", fmt.Sprintf("%.3f", snap.Summary.MeanParticipation), styleValue)
	if n := len(snap.History); n > 0 {
		last := snap.History[n-1]
		line("msd", fmt.Sprintf("%.2f / %.2f", last.MeasuredValue, last.TheoreticalValue), styleValue)
	}
	line("spacing", sparkline(snap.Histogram), styleValue)
	line("tick", fmt.Sprintf("%d  v%d", snap.Tick, snap.Version), styleLabel)
	if control.OffResonance(st) {
		line("hint", SnapHint, styleHeat)
	}
}

func progressBar(p float64) string {
	filled := int(vmath.Clamp(p, 0, 1) * barWidth)
	bar := make([]rune, barWidth)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '·'
		}
	}
	return fmt.Sprintf("%s %5.1f%%", string(bar), p*100)
}

func sparkline(values []float64) string {
	var peak float64
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if peak > 0 {
			idx = int(v / peak * float64(len(sparkRunes)-1))
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
