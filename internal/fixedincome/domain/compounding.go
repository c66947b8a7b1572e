package domain

import (
	"fmt"
	"math"
	"strings"
)

// CompoundingFrequency 付息/复利频率
type CompoundingFrequency string

const (
	CompoundingAnnual     CompoundingFrequency = "ANNUAL"
	CompoundingSemiAnnual CompoundingFrequency = "SEMI_ANNUAL"
	CompoundingQuarterly  CompoundingFrequency = "QUARTERLY"
	CompoundingMonthly    CompoundingFrequency = "MONTHLY"
)

// ParseCompoundingFrequency 解析频率字符串，大小写不敏感，接受 '-' 分隔
func ParseCompoundingFrequency(s string) (CompoundingFrequency, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	switch CompoundingFrequency(normalized) {
	case CompoundingAnnual, CompoundingSemiAnnual, CompoundingQuarterly, CompoundingMonthly:
		return CompoundingFrequency(normalized), nil
	default:
		return "", fmt.Errorf("%w: unknown compounding frequency %q", ErrInvalidInput, s)
	}
}

// PeriodsPerYear 每年期数
func (f CompoundingFrequency) PeriodsPerYear() int {
	switch f {
	case CompoundingSemiAnnual:
		return 2
	case CompoundingQuarterly:
		return 4
	case CompoundingMonthly:
		return 12
	default:
		return 1
	}
}

// ToContinuous 离散复利转连续复利：m*ln(1+r/m)
func (f CompoundingFrequency) ToContinuous(rate float64) float64 {
	m := float64(f.PeriodsPerYear())
	return m * math.Log(1+rate/m)
}

// FromContinuous 连续复利转离散复利：m*(e^{r/m}-1)
func (f CompoundingFrequency) FromContinuous(rate float64) float64 {
	m := float64(f.PeriodsPerYear())
	return m * (math.Exp(rate/m) - 1)
}
