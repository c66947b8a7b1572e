package domain

import (
	"fmt"
	"math"
	"sort"
)

// CurvePoint 收益率曲线节点：期限（年）与连续复利零息利率
type CurvePoint struct {
	Maturity float64
	Rate     float64
}

// YieldCurve 零息收益率曲线
// 节点间对零息利率做线性插值，两端平坦外推
type YieldCurve struct {
	points []CurvePoint
}

// NewYieldCurve 创建收益率曲线，要求至少一个节点且期限严格递增
func NewYieldCurve(points []CurvePoint) (*YieldCurve, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: yield curve requires at least one point", ErrInvalidInput)
	}
	for i, pt := range points {
		if pt.Maturity < 0 {
			return nil, fmt.Errorf("%w: maturity must be >= 0, got %v", ErrInvalidInput, pt.Maturity)
		}
		if i > 0 && pt.Maturity <= points[i-1].Maturity {
			return nil, fmt.Errorf("%w: maturities must be strictly increasing", ErrInvalidInput)
		}
	}
	owned := make([]CurvePoint, len(points))
	copy(owned, points)
	return &YieldCurve{points: owned}, nil
}

// Rate 期限 t 处的零息利率
func (c *YieldCurve) Rate(t float64) float64 {
	pts := c.points
	if t <= pts[0].Maturity {
		return pts[0].Rate
	}
	last := pts[len(pts)-1]
	if t >= last.Maturity {
		return last.Rate
	}
	// 首个期限 >= t 的节点
	idx := sort.Search(len(pts), func(i int) bool { return pts[i].Maturity >= t })
	lo, hi := pts[idx-1], pts[idx]
	weight := (t - lo.Maturity) / (hi.Maturity - lo.Maturity)
	return lo.Rate + weight*(hi.Rate-lo.Rate)
}

// DiscountFactor 期限 t 的贴现因子 exp(-r(t)*t)
func (c *YieldCurve) DiscountFactor(t float64) float64 {
	if t <= 0 {
		return 1
	}
	return math.Exp(-c.Rate(t) * t)
}

// ForwardRate t1 到 t2 之间的连续复利远期利率
func (c *YieldCurve) ForwardRate(t1, t2 float64) (float64, error) {
	if t1 < 0 || t2 <= t1 {
		return 0, fmt.Errorf("%w: forward rate requires 0 <= t1 < t2", ErrInvalidInput)
	}
	r1 := c.Rate(t1)
	r2 := c.Rate(t2)
	return (r2*t2 - r1*t1) / (t2 - t1), nil
}

// ParallelShift 整条曲线平移 delta 后的新曲线，原曲线不变
func (c *YieldCurve) ParallelShift(delta float64) *YieldCurve {
	shifted := make([]CurvePoint, len(c.points))
	for i, pt := range c.points {
		shifted[i] = CurvePoint{Maturity: pt.Maturity, Rate: pt.Rate + delta}
	}
	return &YieldCurve{points: shifted}
}
