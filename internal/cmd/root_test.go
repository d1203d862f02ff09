package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsync/internal/config"
	"taxsync/internal/domain"
)

func intPtr(v int) *int { return &v }

func parseCLI(t *testing.T, settings *config.Settings, args ...string) *CLI {
	t.Helper()
	cli, _ := parseCommand(t, settings, args...)
	return cli
}

func parseCommand(t *testing.T, settings *config.Settings, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	t.Setenv("TAXSYNC_HOME", t.TempDir())
	t.Setenv("TAXSYNC_DEBUG", "")
	t.Setenv("TAXSYNC_DEBUG_FILE", "")

	var cli CLI
	cli.SetSettings(settings)
	parser, err := kong.New(&cli, kong.Name("taxsync"), kong.Exit(func(int) {}), kong.Bind(&cli))
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	t.Cleanup(func() { cli.Close() })
	return &cli, kctx
}

func TestCommandNames(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"version"}, "version"},
		{[]string{"branches"}, "branches list"},
		{[]string{"settings"}, "settings show"},
		{[]string{"publish", "knowledge-abc"}, "publish <branch>"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			_, kctx := parseCommand(t, nil, tt.args...)
			assert.Equal(t, tt.want, kctx.Command())
		})
	}
}

func TestAfterApply_SettingsFillDefaults(t *testing.T) {
	settings := &config.Settings{
		DefaultBranch:         "trunk",
		PublishTimeoutSeconds: intPtr(30),
		WalkConcurrency:       intPtr(2),
	}

	cli := parseCLI(t, settings, "settings", "show", "-o", "json")

	assert.Equal(t, "trunk", cli.DefaultBranch)
	assert.Equal(t, 2, cli.WalkConcurrency)
	engine := cli.Engine()
	assert.Equal(t, 30*time.Second, engine.PublishTimeout)
	assert.NotNil(t, cli.Container)
}

func TestAfterApply_FlagsOverrideSettings(t *testing.T) {
	settings := &config.Settings{DefaultBranch: "trunk", WalkConcurrency: intPtr(2)}

	cli := parseCLI(t, settings, "--default-branch", "develop", "--walk-concurrency", "16", "settings", "show")

	assert.Equal(t, "develop", cli.DefaultBranch)
	assert.Equal(t, 16, cli.WalkConcurrency)
}

func TestAfterApply_EnvOverridesSettings(t *testing.T) {
	t.Setenv("TAXSYNC_DEFAULT_BRANCH", "release")
	settings := &config.Settings{DefaultBranch: "trunk"}

	cli := parseCLI(t, settings, "settings", "show")

	assert.Equal(t, "release", cli.DefaultBranch)
}

func TestAfterApply_DefaultsWithoutSettings(t *testing.T) {
	cli := parseCLI(t, nil, "settings", "show")

	engine := cli.Engine()
	assert.Equal(t, config.DefaultBranch, engine.DefaultBranch)
	assert.Equal(t, config.DefaultWalkConcurrency, engine.WalkConcurrency)
	assert.Equal(t, config.DefaultPublishTimeoutSeconds*time.Second, engine.PublishTimeout)
}

func TestRepoResolution(t *testing.T) {
	cli := &CLI{settings: &config.Settings{SourceRepo: "/repos/local"}}

	source, err := cli.sourceRepo("")
	require.NoError(t, err)
	assert.Equal(t, "/repos/local", source)

	source, err = cli.sourceRepo("/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", source)

	_, err = cli.targetRepo("")
	assert.Error(t, err)
}

func TestOutputFlag_Structured(t *testing.T) {
	value := domain.BranchRecord{Name: "skill-a", CreatedAtMillis: 1000, Summary: "Add skill"}

	tests := []struct {
		name     string
		output   string
		wantDone bool
		contains string
	}{
		{name: "json", output: outputJSON, wantDone: true, contains: `"creationTimestampMillis": 1000`},
		{name: "yaml", output: outputYAML, wantDone: true, contains: "creationTimestampMillis: 1000"},
		{name: "text", output: outputText, wantDone: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			done, err := OutputFlag{Output: tt.output}.structured(&buf, value)

			require.NoError(t, err)
			assert.Equal(t, tt.wantDone, done)
			if tt.wantDone {
				assert.Contains(t, buf.String(), tt.contains)
				assert.Contains(t, buf.String(), "attributedAuthor")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Add skill", firstLine("Add skill\n\nContribution-Name:a"))
	assert.Equal(t, "single", firstLine("single"))
	assert.Equal(t, "", firstLine(""))
}
