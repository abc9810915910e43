package engine

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEmptySource(t *testing.T) {
	eng := New()
	for _, src := range []string{"", "   \n\t  \n  "} {
		g, evalErrs, err := eng.Evaluate(src)
		require.NoError(t, err)
		require.Empty(t, evalErrs)
		require.NotNil(t, g)
		assert.Empty(t, g.Nodes())
	}
}

func TestEvaluatePlainExpressions(t *testing.T) {
	eng := New()

	g, evalErrs, err := eng.Evaluate("(+ 1 2)\n(* 3 4)\n(- 10 5)")
	require.NoError(t, err)
	require.Empty(t, evalErrs)
	assert.Empty(t, g.Nodes())
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := New()

	g, evalErrs, err := eng.Evaluate("(+ 1 2")
	require.NoError(t, err, "syntax errors are eval errors, not fatal")
	assert.Nil(t, g)
	require.NotEmpty(t, evalErrs)
	assert.NotEmpty(t, evalErrs[0].Message)
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := New()

	g, evalErrs, err := eng.Evaluate("(undefined-function 1 2)")
	require.NoError(t, err)
	assert.Nil(t, g)
	assert.NotEmpty(t, evalErrs)
}

func TestEvaluateSyntaxErrorHasLineInfo(t *testing.T) {
	eng := New()

	_, evalErrs, err := eng.Evaluate("(+ 1 2)\n(+ 3 4)\n(+ 5")
	require.NoError(t, err)
	require.NotEmpty(t, evalErrs)
	for _, e := range evalErrs {
		if e.Line > 0 {
			assert.Contains(t, e.Error(), "line ")
		}
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	var err error = EvalError{Line: 5, Message: "unexpected token"}
	assert.Equal(t, "line 5: unexpected token", err.Error())

	err = EvalError{Message: "generic error"}
	assert.Equal(t, "generic error", err.Error())
}

func TestEvaluateConcurrentCallers(t *testing.T) {
	eng := New()
	src := `(node "CubePrimitive")`

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, evalErrs, err := eng.Evaluate(src)
			if err != nil {
				assert.ErrorIs(t, err, ErrSuperseded)
				return
			}
			assert.Empty(t, evalErrs)
			assert.Len(t, g.Nodes(), 1)
		}()
	}
	wg.Wait()
}

func TestAwait(t *testing.T) {
	tests := []struct {
		name    string
		deliver bool
		stale   bool
		want    error
	}{
		{"interpreter never finishes", false, false, ErrTimeout},
		{"newer evaluation started", true, true, ErrSuperseded},
		{"latest evaluation finishes", true, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(WithTimeout(20 * time.Millisecond))
			ticket := eng.begin()
			if tt.stale {
				eng.begin()
			}
			done := make(chan outcome, 1)
			if tt.deliver {
				done <- outcome{}
			}

			start := time.Now()
			_, _, err := eng.await(done, ticket)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.Less(t, time.Since(start), DefaultEvalTimeout)
		})
	}
}

func TestWithTimeoutIgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultEvalTimeout, New(WithTimeout(0)).timeout)
	assert.Equal(t, time.Second, New(WithTimeout(time.Second)).timeout)
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line format", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"no line info", "some generic error", 0, "some generic error"},
		{"lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short form", "line 3: bad input", 3, "bad input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantLine, errs[0].Line)
			assert.True(t, strings.Contains(errs[0].Message, tt.wantMsg), errs[0].Message)
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }
