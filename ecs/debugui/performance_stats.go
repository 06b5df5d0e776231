package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flockflow/ecs"
)

// frameHistory is a fixed-size ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(size int) *frameHistory {
	return &frameHistory{samples: make([]float32, max(size, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average is the mean of the recorded samples only.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for i := range h.filled {
		sum += h.samples[i]
	}
	return sum / float32(h.filled)
}

// PerformanceStats shows frame timing and the scheduler's per-system timings.
type PerformanceStats struct {
	scheduler *ecs.Scheduler
	history   *frameHistory
	last      time.Time
}

func NewPerformanceStats(scheduler *ecs.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		scheduler: scheduler,
		history:   newFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStats) sample(now time.Time) {
	if !ps.last.IsZero() {
		ps.history.push(float32(now.Sub(ps.last).Seconds() * 1000))
	}
	ps.last = now
}

func (ps *PerformanceStats) Render(storage *ecs.Storage) {
	ps.sample(time.Now())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 400), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	avg := ps.history.average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Entities: %d", storage.Len()))
	imgui.Text(fmt.Sprintf("Avg frame: %.2f ms (%.0f FPS)", avg, fps))
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	if ps.scheduler == nil {
		return
	}
	stats := ps.scheduler.GetStats()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("%d systems, %d executions", stats.SystemCount, stats.TotalExecutions))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.LastDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.AvgDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.MaxDuration))
		}
		imgui.EndTable()
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
}
