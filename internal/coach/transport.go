package coach

import (
	"context"
	"iter"
)

// Transport 生成式模型的调用方式，直连与 relay 对调用方完全等价
type Transport interface {
	Name() string
	// Generate 返回完整文本
	Generate(ctx context.Context, req Request) (string, error)
	// Stream 逐段返回文本，chat 模式使用
	Stream(ctx context.Context, req Request) iter.Seq2[string, error]
}
