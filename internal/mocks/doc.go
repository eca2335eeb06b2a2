// Package mocks provides shared test doubles for the application's
// interfaces.
//
// Most mocks use function fields with default return values:
//
//	analyzer := &mocks.MockAnalyzer{
//	    AnalyzeFn: func(ctx context.Context, req enrich.Request) (domain.Analysis, error) {
//	        return domain.Analysis{Root: "test"}, nil
//	    },
//	}
//
// MockStudyService is built on testify's mock package so handler tests can
// assert on the exact arguments passed through.
package mocks
