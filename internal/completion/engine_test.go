package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock completer for testing
type mockCompleter struct {
	name           string
	supportsResult bool
	suggestions    []Suggestion
	ok             bool
	err            error
	called         bool
}

func (m *mockCompleter) Name() string {
	return m.name
}

func (m *mockCompleter) Supports(_ *Context) bool {
	return m.supportsResult
}

func (m *mockCompleter) Complete(_ context.Context, _ *Context) ([]Suggestion, bool, error) {
	m.called = true
	return m.suggestions, m.ok, m.err
}

func mustContext(t *testing.T, line string) *Context {
	t.Helper()
	c, err := NewContext(line, len([]rune(line)))
	require.NoError(t, err)
	return c
}

func TestEngine_Complete_FirstClaimWins(t *testing.T) {
	first := &mockCompleter{name: "first", supportsResult: true, ok: false}
	second := &mockCompleter{name: "second", supportsResult: true, ok: true,
		suggestions: []Suggestion{{Value: "a"}, {Value: "b"}}}
	third := &mockCompleter{name: "third", supportsResult: true, ok: true,
		suggestions: []Suggestion{{Value: "c"}}}

	engine := NewEngine(first, second, third)
	result, err := engine.Complete(context.Background(), mustContext(t, "p x"))
	require.NoError(t, err)

	assert.Equal(t, "second", result.Source)
	assert.Equal(t, []string{"a", "b"}, result.Values())
	assert.True(t, first.called)
	assert.False(t, third.called)
}

func TestEngine_Complete_SkipsUnsupported(t *testing.T) {
	skipped := &mockCompleter{name: "skipped", supportsResult: false, ok: true}
	used := &mockCompleter{name: "used", supportsResult: true, ok: true}

	result, err := NewEngine(skipped, used).Complete(context.Background(), mustContext(t, "p x"))
	require.NoError(t, err)

	assert.Equal(t, "used", result.Source)
	assert.False(t, skipped.called)
}

func TestEngine_Complete_NoStrategyApplies(t *testing.T) {
	result, err := NewEngine(&mockCompleter{name: "m", supportsResult: true}).
		Complete(context.Background(), mustContext(t, "p x"))
	require.NoError(t, err)

	assert.Equal(t, "none", result.Source)
	assert.Empty(t, result.Suggestions)
}

func TestEngine_Complete_ErrorAborts(t *testing.T) {
	failing := &mockCompleter{name: "failing", supportsResult: true, err: errors.New("boom")}
	next := &mockCompleter{name: "next", supportsResult: true, ok: true}

	_, err := NewEngine(failing, next).Complete(context.Background(), mustContext(t, "p x"))
	assert.EqualError(t, err, "boom")
	assert.False(t, next.called)
}

func TestFilter(t *testing.T) {
	suggestions := []Suggestion{
		{Value: "test", Description: "Run tests"},
		{Value: "tailor", Description: "Generate BUILD files"},
		{Value: "fmt", Description: "Format sources"},
	}

	// Empty prefix returns all
	assert.Len(t, Filter(suggestions, ""), 3)

	filtered := Filter(suggestions, "te")
	require.Len(t, filtered, 1)
	assert.Equal(t, "test", filtered[0].Value)

	assert.Len(t, Filter(suggestions, "t"), 2)
	assert.Empty(t, Filter(suggestions, "xyz"))
}

func TestResult_Values(t *testing.T) {
	result := Result{
		Suggestions: []Suggestion{
			{Value: "foo", Description: "python_sources"},
			{Value: "foobar", Description: "python_tests"},
		},
		Source: "Target",
	}

	assert.Equal(t, []string{"foo", "foobar"}, result.Values())
	assert.Empty(t, (&Result{}).Values())
}
