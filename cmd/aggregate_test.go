package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/covmerge/internal/config"
	"github.com/mouse-blink/covmerge/internal/domain"
	domainmocks "github.com/mouse-blink/covmerge/internal/domain/mocks"
	m "github.com/mouse-blink/covmerge/internal/model"
)

func absPath(t *testing.T, p string) m.Path {
	t.Helper()

	abs, err := filepath.Abs(p)
	require.NoError(t, err)

	return m.Path(abs)
}

func TestAggregateCmd_PassesFlags(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestCmd(t, mockWorkflow)

	mockWorkflow.On("Aggregate", mock.Anything, mock.MatchedBy(func(args domain.AggregateArgs) bool {
		return args.Input == absPath(t, "reports") &&
			args.Output == absPath(t, "out") &&
			args.Mask == "*.cov.json" &&
			args.Threads == 4
	})).Return(nil)

	cmd.SetArgs([]string{"aggregate", "-i", "reports", "-o", "out", "-m", "*.cov.json", "-p", "4"})
	require.NoError(t, cmd.Execute())
}

func TestAggregateCmd_DefaultMask(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestCmd(t, mockWorkflow)

	mockWorkflow.On("Aggregate", mock.Anything, mock.MatchedBy(func(args domain.AggregateArgs) bool {
		return args.Mask == config.DefaultMask && args.Threads == 0
	})).Return(nil)

	cmd.SetArgs([]string{"aggregate", "--input", "reports", "--output", "out"})
	require.NoError(t, cmd.Execute())
}

func TestAggregateCmd_MissingOutput(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestCmd(t, mockWorkflow)

	cmd.SetArgs([]string{"aggregate", "-i", "reports"})
	err := cmd.Execute()
	require.ErrorIs(t, err, config.ErrMissingInput)

	mockWorkflow.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything)
}

func TestAggregateCmd_EnvOverride(t *testing.T) {
	t.Setenv("COVMERGE_INPUT", "from-env")
	t.Setenv("COVMERGE_OUTPUT", "out-env")

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	cmd := newTestCmd(t, mockWorkflow)

	mockWorkflow.On("Aggregate", mock.Anything, mock.MatchedBy(func(args domain.AggregateArgs) bool {
		return args.Input == absPath(t, "from-env") && args.Output == absPath(t, "out-env")
	})).Return(nil)

	cmd.SetArgs([]string{"aggregate"})
	require.NoError(t, cmd.Execute())
}

func TestAggregateCmd_RejectsPositionalArgs(t *testing.T) {
	cmd := newTestCmd(t, domainmocks.NewMockWorkflow(t))

	cmd.SetArgs([]string{"aggregate", "-i", "a", "-o", "b", "extra"})
	require.Error(t, cmd.Execute())
}

func TestNewAggregateCmd(t *testing.T) {
	cmd := newAggregateCmd()

	assert.Equal(t, "aggregate", cmd.Use)
	assert.Equal(t, aggregateLongDescription, cmd.Long)

	for _, name := range []string{"input", "output", "mask", "parallel"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}

	assert.Equal(t, "i", cmd.Flags().Lookup("input").Shorthand)
	assert.Equal(t, "o", cmd.Flags().Lookup("output").Shorthand)
	assert.Equal(t, "m", cmd.Flags().Lookup("mask").Shorthand)
	assert.Equal(t, config.DefaultMask, cmd.Flags().Lookup("mask").DefValue)
}
