package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/flockflow/ecs"
)

type Report struct {
	// Configuration
	Mode           string
	Boids          int
	Ticks          int
	TickLength     time.Duration
	GCPauseMetrics bool

	// Results
	TotalTime       time.Duration
	UpdateTime      Stats
	Scheduler       *ecs.SchedulerStats
	Storage         *ecs.StorageStats
	IndexedEntities int
	IndexCells      int
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P95     time.Duration
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
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := make([]time.Duration, len(s.Samples))
	copy(sorted, s.Samples)
	slices.Sort(sorted)
	s.P95 = sorted[(len(sorted)*95+99)/100-1]
}

const reportTemplate = `# Flock Stress Report

## Configuration
- **Mode:** {{.Mode}}
- **Boids:** {{.Boids}}
- **Ticks:** {{.Ticks}} x {{.TickLength}}

## Tick Time
- **Total:** {{.TotalTime}}
- **Avg:** {{.UpdateTime.Avg}}
- **P95:** {{.UpdateTime.P95}}
- **Min:** {{.UpdateTime.Min}}
- **Max:** {{.UpdateTime.Max}}
{{with .Scheduler}}
## Systems ({{.SystemCount}})
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}{{end}}{{with .Storage}}
## World
- **Entities:** {{.TotalEntityCount}} in {{.ArchetypeCount}} archetypes
- **Singletons:** {{.SingletonCount}}
{{end}}- **Spatial index:** {{.IndexedEntities}} entities in {{.IndexCells}} cells

## Memory
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MiB -> {{mb .MemStatsEnd.HeapAlloc}} MiB
- Total Alloc: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}} MiB during run
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}- GC Pause:    {{ns (bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mb": func(v uint64) string {
		return fmt.Sprintf("%.2f", float64(v)/1024/1024)
	},
	"bsub": func(a, b uint64) uint64 {
		if a < b {
			return 0
		}
		return a - b
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
