package domain

import "errors"

// 定价核心的错误类型。
// 所有错误对相同输入是确定性的，调用方不应重试。
var (
	// ErrInvalidInput 参数超出合法范围
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelStyleMismatch Black-Scholes 不支持美式期权
	ErrModelStyleMismatch = errors.New("model does not support option style")
	// ErrUnsupportedModelStyle 蒙特卡洛不支持美式行权（需要 Longstaff-Schwartz）
	ErrUnsupportedModelStyle = errors.New("unsupported model style")
	// ErrNonConvergence 求解器迭代耗尽或导数过小
	ErrNonConvergence = errors.New("solver did not converge")
	// ErrDegenerateMarketData 市场数据退化（如零波动率下求根需要非零 vega）
	ErrDegenerateMarketData = errors.New("degenerate market data")
)
