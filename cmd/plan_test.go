package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"stunt.dev/pkg/stunt/internal/domain"
	domainmocks "stunt.dev/pkg/stunt/internal/domain/mocks"
	m "stunt.dev/pkg/stunt/internal/model"
)

func TestPlanCmd_Defaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return args.Parallel == 1 &&
			args.Output == m.Path(".stunt-plan.yaml") &&
			args.Format == m.FormatTable &&
			args.IncludeTests == false &&
			args.UseCache == true
	})).Return(nil)

	cmd.SetArgs([]string{"plan", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_ParallelFlag(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return args.Parallel == 2
	})).Return(nil)

	cmd.SetArgs([]string{"plan", "--parallel", "2", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_MultiplePaths(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return len(args.Paths) == 3 &&
			args.Paths[0] == m.Path("./cmd") &&
			args.Paths[1] == m.Path("./pkg") &&
			args.Paths[2] == m.Path("./internal")
	})).Return(nil)

	cmd.SetArgs([]string{"plan", "./cmd", "./pkg", "./internal"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_PathPatternsAreNormalized(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return len(args.Paths) == 2 &&
			args.Paths[0] == m.Path("./pkg") &&
			args.Paths[1] == m.Path(".")
	})).Return(nil)

	cmd.SetArgs([]string{"plan", "./pkg/...", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_NoArgsPlansCurrentDirectory(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return len(args.Paths) == 1 && args.Paths[0] == m.Path(".")
	})).Return(nil)

	cmd.SetArgs([]string{"plan"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_WithExcludePatterns(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return len(args.Exclude) == 2 &&
			args.Exclude[0] == "vendor" &&
			args.Exclude[1] == "testdata"
	})).Return(nil)

	cmd.SetArgs([]string{"plan", "-x", "vendor", "-x", "testdata", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_NoCacheFlag_DisablesCache(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return args.UseCache == false
	})).Return(nil)

	cmd.SetArgs([]string{"--no-cache", "plan", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_TestsFlag_IncludesTestFiles(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return args.IncludeTests == true
	})).Return(nil)

	cmd.SetArgs([]string{"plan", "--tests", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestPlanCmd_YAMLFormat(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newPlanCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Plan", mock.Anything, mock.MatchedBy(func(args domain.PlanArgs) bool {
		return args.Format == m.FormatYAML
	})).Return(nil)

	cmd.SetArgs([]string{"plan", "--format", "yaml", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestNewPlanCmd(t *testing.T) {
	cmd := newPlanCmd()

	assert.Equal(t, "plan [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Equal(t, planLongDescription, cmd.Long)

	parallelFlag := cmd.Flags().Lookup("parallel")
	assert.NotNil(t, parallelFlag)
	testsFlag := cmd.Flags().Lookup("tests")
	assert.NotNil(t, testsFlag)
	formatFlag := cmd.Flags().Lookup("format")
	assert.NotNil(t, formatFlag)
}

func TestParsePlanFormat(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  m.PlanFormat
	}{
		{"empty string", "", m.FormatTable},
		{"table", "table", m.FormatTable},
		{"yaml", "yaml", m.FormatYAML},
		{"yaml uppercase", "YAML", m.FormatYAML},
		{"yaml padded", "  yaml  ", m.FormatYAML},
		{"unknown value", "csv", m.FormatTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePlanFormat(tt.value))
		})
	}
}
