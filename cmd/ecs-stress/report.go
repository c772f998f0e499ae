package main

import (
	"cmp"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/tickworld/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Churn      int
	Components int
	Systems    int

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	World          ecs.WorldStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// SlowestSystems returns up to n systems ordered by average frame time.
func (r *Report) SlowestSystems(n int) []ecs.SystemStats {
	systems := slices.Clone(r.World.Systems)
	slices.SortStableFunc(systems, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})
	if len(systems) > n {
		systems = systems[:n]
	}
	return systems
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Churn Per Frame:** {{.Churn}}
- **Generated Components:** {{.Components}}
- **Generated Systems:** {{.Systems}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## World
- **Frames:** {{.World.Frame}}
- **Living Entities:** {{.World.LivingEntities}}
- **Slots:** {{.World.Slots}} ({{.World.FreeSlots}} free, {{.World.RetiredSlots}} retired)
- **Component Types:** {{.World.ComponentTypes}}

## Slowest Systems
{{range .SlowestSystems 5}}- {{.Name}} (priority {{.Priority}}): avg {{.AvgDuration}}, max {{.MaxDuration}}, runs {{.ExecutionCount}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
