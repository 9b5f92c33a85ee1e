package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	replies []string
	errs    []error
	calls   int
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	i := g.calls
	g.calls++
	if i >= len(g.errs) {
		i = len(g.errs) - 1
	}
	return g.replies[i], g.errs[i]
}

func TestWithRetryRecoversFromOneNetworkFailure(t *testing.T) {
	inner := &scriptedGenerator{
		replies: []string{"", "<html>ok</html>"},
		errs:    []error{&NetworkError{Err: errors.New("timeout")}, nil},
	}

	text, err := WithRetry(inner).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", text)
	assert.Equal(t, 2, inner.calls)
}

func TestWithRetryGivesUpAfterSecondNetworkFailure(t *testing.T) {
	inner := &scriptedGenerator{
		replies: []string{"", ""},
		errs:    []error{&NetworkError{Err: errors.New("down")}, &NetworkError{Err: errors.New("still down")}},
	}

	_, err := WithRetry(inner).Generate(context.Background(), "p")
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, 2, inner.calls)
}

func TestWithRetryDoesNotRetryOtherFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"auth config missing", ErrAuthConfigMissing},
		{"upstream rejection", &UpstreamError{Status: 500}},
		{"empty completion", ErrEmptyCompletion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &scriptedGenerator{replies: []string{""}, errs: []error{tt.err}}
			_, err := WithRetry(inner).Generate(context.Background(), "p")
			assert.Equal(t, tt.err, err)
			assert.Equal(t, 1, inner.calls)
		})
	}
}

func TestWithRetrySkipsRetryWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &scriptedGenerator{
		replies: []string{""},
		errs:    []error{&NetworkError{Err: errors.New("canceled")}},
	}
	_, err := WithRetry(inner).Generate(ctx, "p")
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, 1, inner.calls)
}
