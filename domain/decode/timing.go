package decode

import (
	"math"

	"github.com/xenontools/ppccalc/domain/numeric"
)

// TimingResult describes a frequency/period conversion.
type TimingResult struct {
	Hz          float64 `json:"hz"`
	PeriodMs    float64 `json:"period_ms"`
	FrameTimeMs float64 `json:"frame_time_ms,omitempty"`
	Fps         float64 `json:"fps,omitempty"`
}

// HzToMs converts a frequency to its period in milliseconds.
func HzToMs(hz float64) (TimingResult, error) {
	if !isPositiveFinite(hz) {
		return TimingResult{}, numeric.DomainErrorf("frequency %v must be a positive finite number", hz)
	}
	return TimingResult{Hz: hz, PeriodMs: 1000 / hz}, nil
}

// FPS converts a frame time in milliseconds to frames per second.
func FPS(frameTimeMs float64) (TimingResult, error) {
	if !isPositiveFinite(frameTimeMs) {
		return TimingResult{}, numeric.DomainErrorf("frame time %v must be a positive finite number", frameTimeMs)
	}
	fps := 1000 / frameTimeMs
	return TimingResult{Hz: fps, PeriodMs: frameTimeMs, FrameTimeMs: frameTimeMs, Fps: fps}, nil
}

// TimingAnalysisResult reports an actual frame time against the budget
// implied by a target frame rate.
type TimingAnalysisResult struct {
	TargetFps         float64 `json:"target_fps"`
	BudgetMs          float64 `json:"budget_ms"`
	ActualFrameTimeMs float64 `json:"actual_frame_time_ms"`
	ActualFps         float64 `json:"actual_fps"`
	OverBudget        bool    `json:"over_budget"`
	// DeltaMs is actual minus budget: positive when the frame missed.
	DeltaMs float64 `json:"delta_ms"`
}

// TimingAnalysis compares an actual frame time to the 1000/targetFps
// budget.
func TimingAnalysis(targetFps, actualFrameTimeMs float64) (TimingAnalysisResult, error) {
	if !isPositiveFinite(targetFps) {
		return TimingAnalysisResult{}, numeric.DomainErrorf("target fps %v must be a positive finite number", targetFps)
	}
	if !isPositiveFinite(actualFrameTimeMs) {
		return TimingAnalysisResult{}, numeric.DomainErrorf("frame time %v must be a positive finite number", actualFrameTimeMs)
	}

	budget := 1000 / targetFps
	return TimingAnalysisResult{
		TargetFps:         targetFps,
		BudgetMs:          budget,
		ActualFrameTimeMs: actualFrameTimeMs,
		ActualFps:         1000 / actualFrameTimeMs,
		OverBudget:        actualFrameTimeMs > budget,
		DeltaMs:           actualFrameTimeMs - budget,
	}, nil
}

func isPositiveFinite(f float64) bool {
	return f > 0 && !math.IsInf(f, 1) && !math.IsNaN(f)
}
