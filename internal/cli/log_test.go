package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Built follows graph", "users", 3, "edges", 4)

	out := buf.String()
	for _, want := range []string{"Built follows graph (", "users=3", "edges=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestProgressDoneBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.WarnLevel))
	prog.done("Analyzed posts")
	if buf.Len() != 0 {
		t.Errorf("expected no output at warn level, got %q", buf.String())
	}
}

func TestLoggerFromContextFallback(t *testing.T) {
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("expected log.Default() without an attached logger")
	}
}

func TestRootAttachesLogger(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	var got *log.Logger
	root.AddCommand(&cobra.Command{
		Use: "whoami-logger",
		RunE: func(cmd *cobra.Command, args []string) error {
			got = loggerFromContext(cmd.Context())
			return nil
		},
	})
	root.SetArgs([]string{"whoami-logger"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != c.Logger {
		t.Error("subcommand context should carry the CLI logger")
	}
}

func TestVerboseFlag(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantLevel  log.Level
		wantDebug  bool
		wantSticky bool
	}{
		{"Default", []string{"follows"}, LogInfo, false, false},
		{"Short", []string{"-v", "follows"}, LogDebug, true, true},
		{"Long", []string{"follows", "--verbose"}, LogDebug, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			c := New(&logs, LogInfo)
			root := c.RootCommand()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetIn(strings.NewReader(samplePostsJSON))
			root.SetArgs(tt.args)

			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			if got := c.Logger.GetLevel(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}
			if c.verboseSet != tt.wantSticky {
				t.Errorf("verboseSet = %v, want %v", c.verboseSet, tt.wantSticky)
			}

			out := logs.String()
			if !strings.Contains(out, "Built follows graph") || !strings.Contains(out, "edges=4") {
				t.Errorf("missing progress line in %q", out)
			}
			if got := strings.Contains(out, "Loaded 3 posts from stdin"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}
