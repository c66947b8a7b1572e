package domain

import "errors"

// 固定收益领域错误，供应用层与接口层通过 errors.Is 判别
var (
	// ErrInvalidInput 输入参数非法
	ErrInvalidInput = errors.New("invalid input")
	// ErrNonConvergence 数值求解未收敛
	ErrNonConvergence = errors.New("solver failed to converge")
)
