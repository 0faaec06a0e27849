package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicecheck/internal/analyzer"
	"invoicecheck/internal/config"
	"invoicecheck/internal/port"
)

// stubAnalyzer is a minimal InvoiceAnalyzer for testing the factory.
type stubAnalyzer struct {
	model string
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	return &port.AnalyzeOutput{RawReport: []byte(`{}`), ModelUsed: s.model}, nil
}

func registerStub(name string) {
	analyzer.RegisterProvider(name, func(cfg *config.AnalyzerProviderConfig) (port.InvoiceAnalyzer, error) {
		return &stubAnalyzer{model: cfg.DefaultModel}, nil
	})
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	registerStub("test-provider")

	a, err := analyzer.NewAnalyzer(&config.AnalyzerProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})
	require.NoError(t, err)

	out, err := a.Analyze(context.Background(), port.AnalyzeInput{})
	require.NoError(t, err)
	assert.Equal(t, "test-model", out.ModelUsed)
	assert.Contains(t, analyzer.Providers(), "test-provider")
}

func TestFactory_UnknownProvider(t *testing.T) {
	a, err := analyzer.NewAnalyzer(&config.AnalyzerProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, a)
	assert.ErrorContains(t, err, "unknown analyzer provider")
}

func TestBuild_PrimaryOnly(t *testing.T) {
	registerStub("stub-primary")

	a, err := analyzer.Build(&config.AnalyzerConfig{
		Primary: config.AnalyzerProviderConfig{Provider: "stub-primary", DefaultModel: "m1"},
	})
	require.NoError(t, err)
	_, isFallback := a.(*analyzer.FallbackAnalyzer)
	assert.False(t, isFallback)
}

func TestBuild_WithSecondary(t *testing.T) {
	registerStub("stub-primary")
	registerStub("stub-secondary")

	a, err := analyzer.Build(&config.AnalyzerConfig{
		Primary:   config.AnalyzerProviderConfig{Provider: "stub-primary", DefaultModel: "m1"},
		Secondary: config.AnalyzerProviderConfig{Provider: "stub-secondary", DefaultModel: "m2"},
	})
	require.NoError(t, err)
	assert.IsType(t, &analyzer.FallbackAnalyzer{}, a)

	out, err := a.Analyze(context.Background(), port.AnalyzeInput{})
	require.NoError(t, err)
	assert.Equal(t, "m1", out.ModelUsed)
}

func TestBuild_UnknownSecondary(t *testing.T) {
	registerStub("stub-primary")

	_, err := analyzer.Build(&config.AnalyzerConfig{
		Primary:   config.AnalyzerProviderConfig{Provider: "stub-primary"},
		Secondary: config.AnalyzerProviderConfig{Provider: "missing"},
	})
	assert.ErrorContains(t, err, "creating secondary analyzer")
}
