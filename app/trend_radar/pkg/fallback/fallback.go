// Package fallback 实现"按顺序尝试候选项直到成功"的通用逻辑，
// RSS 地址与模型名称的回退共用这一实现。
package fallback

import (
	"context"
	"fmt"
)

// Outcome 单次尝试的结果分类
type Outcome int

const (
	Failure Outcome = iota
	Empty
	Success
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Empty:
		return "empty"
	default:
		return "failure"
	}
}

// Mode 遇到成功后的行为
type Mode int

const (
	// StopOnFirstSuccess 第一个成功后停止
	StopOnFirstSuccess Mode = iota
	// TryAll 尝试全部候选并收集所有成功结果
	TryAll
)

// Attempt 对单个候选的尝试；返回 Success 的同时带 err 视为 Failure，
// Empty/Failure 的 err 作为原因写入日志
type Attempt[C, R any] func(ctx context.Context, candidate C) (R, Outcome, error)

// Log 按尝试顺序记录的诊断信息
type Log []string

type options[C any] struct {
	mode  Mode
	label func(C) string
}

// Option 配置 TryInOrder
type Option[C any] func(*options[C])

// WithMode 设置成功后的行为
func WithMode[C any](m Mode) Option[C] {
	return func(o *options[C]) { o.mode = m }
}

// WithLabel 设置日志中候选项的显示名称
func WithLabel[C any](f func(C) string) Option[C] {
	return func(o *options[C]) { o.label = f }
}

// TryInOrder 依次尝试候选项，返回成功结果（按候选顺序）以及每次尝试的日志。
// ctx 取消后剩余候选记为 skipped，不再尝试。
func TryInOrder[C, R any](ctx context.Context, candidates []C, attempt Attempt[C, R], opts ...Option[C]) ([]R, Log) {
	o := options[C]{
		mode:  StopOnFirstSuccess,
		label: func(c C) string { return fmt.Sprint(c) },
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		results []R
		log     = make(Log, 0, len(candidates))
	)
	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			for _, rest := range candidates[i:] {
				log = append(log, fmt.Sprintf("%s: skipped: %v", o.label(rest), err))
			}
			break
		}

		r, outcome, err := attempt(ctx, c)
		if err != nil && outcome == Success {
			outcome = Failure
		}

		if err != nil {
			log = append(log, fmt.Sprintf("%s: %s: %v", o.label(c), outcome, err))
		} else {
			log = append(log, fmt.Sprintf("%s: %s", o.label(c), outcome))
		}

		if outcome != Success {
			continue
		}
		results = append(results, r)
		if o.mode == StopOnFirstSuccess {
			break
		}
	}
	return results, log
}
