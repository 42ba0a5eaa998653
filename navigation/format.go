package navigation

import (
	"fmt"
	"math"

	"campus-navigator/model"
)

// previewSteps 摘要面板最多展示的步骤数
const previewSteps = 3

// FormatDistance 1000 米以下显示 "N m"，以上显示一位小数的 "N.N km"
func FormatDistance(meters float64) string {
	m := math.Round(meters)
	if m < 1000 {
		return fmt.Sprintf("%d m", int(m))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration 四舍五入到整分钟，正数时长至少显示 1 min
func FormatDuration(seconds float64) string {
	minutes := int(math.Round(seconds / 60))
	if minutes == 0 && seconds > 0 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

// NewDisplay 由路线生成展示数据
func NewDisplay(r *model.Route) *Display {
	if r == nil {
		return nil
	}

	d := &Display{
		Distance: FormatDistance(r.DistanceMeters),
		Duration: FormatDuration(r.DurationSeconds),
	}
	for i, step := range r.Steps {
		if i == previewSteps {
			d.MoreSteps = fmt.Sprintf("...and %d more steps", len(r.Steps)-previewSteps)
			break
		}
		d.Steps = append(d.Steps, step.Instruction)
	}
	return d
}
