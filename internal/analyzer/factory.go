package analyzer

import (
	"fmt"
	"sort"
	"sync"

	"invoicecheck/internal/config"
	"invoicecheck/internal/port"
)

// ProviderFactory creates an InvoiceAnalyzer from a provider config.
type ProviderFactory func(cfg *config.AnalyzerProviderConfig) (port.InvoiceAnalyzer, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers an analyzer provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = factory
}

// Providers lists the registered provider names.
func Providers() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewAnalyzer creates an InvoiceAnalyzer using the registered factory for cfg.Provider.
func NewAnalyzer(cfg *config.AnalyzerProviderConfig) (port.InvoiceAnalyzer, error) {
	providersMu.RLock()
	factory, ok := providers[cfg.Provider]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown analyzer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// Build wires the primary analyzer and, when configured, a secondary
// fallback behind a FallbackAnalyzer.
func Build(cfg *config.AnalyzerConfig) (port.InvoiceAnalyzer, error) {
	primary, err := NewAnalyzer(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("creating primary analyzer: %w", err)
	}
	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}
	secondary, err := NewAnalyzer(secondaryCfg)
	if err != nil {
		return nil, fmt.Errorf("creating secondary analyzer: %w", err)
	}
	return NewFallbackAnalyzer(
		[]port.InvoiceAnalyzer{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}
