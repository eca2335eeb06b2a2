package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/wordflip/internal/domain"
	"github.com/phrazzld/wordflip/internal/enrich"
)

// MockAnalyzer implements enrich.Analyzer for testing.
type MockAnalyzer struct {
	AnalyzeFn func(ctx context.Context, req enrich.Request) (domain.Analysis, error)

	// Defaults used when AnalyzeFn is nil.
	Analysis domain.Analysis
	Err      error

	mu       sync.Mutex
	requests []enrich.Request
}

var _ enrich.Analyzer = (*MockAnalyzer)(nil)

// Analyze implements enrich.Analyzer.
func (m *MockAnalyzer) Analyze(ctx context.Context, req enrich.Request) (domain.Analysis, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.AnalyzeFn != nil {
		return m.AnalyzeFn(ctx, req)
	}
	return m.Analysis, m.Err
}

// Requests returns the requests received so far.
func (m *MockAnalyzer) Requests() []enrich.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]enrich.Request(nil), m.requests...)
}
