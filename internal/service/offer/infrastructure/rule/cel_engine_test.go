// internal/service/offer/infrastructure/rule/cel_engine_test.go
package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodsy/internal/service/offer/domain"
)

func newEngine(t *testing.T) *CELRuleEngine {
	t.Helper()
	engine, err := NewCELRuleEngine()
	require.NoError(t, err)
	return engine
}

func TestCompile(t *testing.T) {
	engine := newEngine(t)

	assert.NoError(t, engine.Compile("subtotal >= 50000 && itemCount >= 2"))
	assert.NoError(t, engine.Compile(""), "empty rule means unconditionally eligible")

	assert.ErrorIs(t, engine.Compile("subtotal >>> 1"), domain.ErrInvalidRule)
	assert.ErrorIs(t, engine.Compile("subtotal + 1"), domain.ErrInvalidRule, "non-boolean rules are rejected at save time")
	assert.ErrorIs(t, engine.Compile("unknownVar > 0"), domain.ErrInvalidRule)
}

func TestEvaluate(t *testing.T) {
	engine := newEngine(t)
	rule := "subtotal >= 50000 && itemCount >= 2"

	eligible, err := engine.Evaluate(rule, domain.EligibilityInput{SubtotalPaise: 60000, ItemCount: 3})
	require.NoError(t, err)
	assert.True(t, eligible)

	eligible, err = engine.Evaluate(rule, domain.EligibilityInput{SubtotalPaise: 40000, ItemCount: 3})
	require.NoError(t, err)
	assert.False(t, eligible)

	eligible, err = engine.Evaluate(rule, domain.EligibilityInput{SubtotalPaise: 60000, ItemCount: 1})
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestEvaluate_EmptyRuleAlwaysEligible(t *testing.T) {
	engine := newEngine(t)

	eligible, err := engine.Evaluate("", domain.EligibilityInput{})
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestEvaluate_CachesCompiledPrograms(t *testing.T) {
	engine := newEngine(t)
	rule := "itemCount > 0"

	for i := 0; i < 3; i++ {
		_, err := engine.Evaluate(rule, domain.EligibilityInput{ItemCount: 1})
		require.NoError(t, err)
	}
	engine.mu.RLock()
	defer engine.mu.RUnlock()
	assert.Len(t, engine.programs, 1)
}
