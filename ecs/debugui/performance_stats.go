package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tickworld/ecs"
)

// PerformanceStats plots frame times and shows World bookkeeping and
// per-system timings.
type PerformanceStats struct {
	Visible bool

	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		Visible:       true,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record stores a frame time, in seconds, in the rolling history.
func (ps *PerformanceStats) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// Average returns the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStats) Average() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

func (ps *PerformanceStats) Render(w *ecs.World, deltaTime float32) {
	ps.Record(deltaTime)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.Stats()

	imgui.Text(fmt.Sprintf("Frame: %d", stats.Frame))
	imgui.Text(fmt.Sprintf("Living Entities: %d", stats.LivingEntities))
	imgui.Text(fmt.Sprintf("Slots: %d (%d free, %d retired)", stats.Slots, stats.FreeSlots, stats.RetiredSlots))
	imgui.Text(fmt.Sprintf("Component Types: %d", stats.ComponentTypes))
	imgui.Text(fmt.Sprintf("Pending: %d destructions, %d refreshes", stats.PendingDestructions, stats.PendingRefreshes))

	avgFrameTime := ps.Average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("System Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
