package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/ui"
)

const canonicalBlock = `Float forward: 5.187378, Float backward: 5.187377
Double forward: 5.187377517639621, Double backward: 5.1873775176396215
Float difference: 9.5367431640625e-07
Double difference: -8.881784197001252e-16
`

// withoutColors disables ANSI colors for the duration of a test so output
// assertions stay byte-exact.
func withoutColors(t *testing.T) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
}

func TestNew_Defaults(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New([]string{"harmcalc"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if application.Config.Terms != 100 {
		t.Errorf("Terms = %d, want 100", application.Config.Terms)
	}
	if application.Config.Algo != "all" {
		t.Errorf("Algo = %q, want %q", application.Config.Algo, "all")
	}
	if application.Factory == nil {
		t.Error("Factory should default to the standard engine registry")
	}
}

func TestNew_EmptyArgs(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New(nil, &errBuf)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if application.Config.Terms != 100 {
		t.Errorf("Terms = %d, want 100", application.Config.Terms)
	}
}

func TestNew_ConfigError(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero terms", []string{"harmcalc", "-n", "0"}},
		{"unknown engine", []string{"harmcalc", "--algo", "quad"}},
		{"negative timeout", []string{"harmcalc", "--timeout", "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := New(tt.args, &errBuf)
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			if IsHelpError(err) {
				t.Error("configuration error should not be a help error")
			}
			if !IsConfigError(err) {
				t.Errorf("IsConfigError(%v) = false, want true", err)
			}
		})
	}
}

func TestNew_HelpError(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"harmcalc", "--help"}, &errBuf)
	if !IsHelpError(err) {
		t.Fatalf("IsHelpError(%v) = false, want true", err)
	}
	if !strings.Contains(errBuf.String(), "harmonic series") {
		t.Error("usage text should describe the harmonic series")
	}
}

func TestRun_Summation(t *testing.T) {
	withoutColors(t)

	var out, errBuf bytes.Buffer
	application, err := New([]string{"harmcalc", "-n", "100"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d\noutput:\n%s", code, apperrors.ExitSuccess, out.String())
	}

	got := out.String()
	for _, want := range []string{
		"Float forward: 5.187378, Float backward: 5.187377",
		"Double forward: 5.187377517639621, Double backward: 5.1873775176396215",
		"Float difference: 9.5367431640625e-07",
		"Double difference: -8.881784197001252e-16",
		"Global Status: Success",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\noutput:\n%s", want, got)
		}
	}
}

func TestRun_Quiet(t *testing.T) {
	withoutColors(t)

	var out, errBuf bytes.Buffer
	application, err := New([]string{"harmcalc", "-q"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	if out.String() != canonicalBlock {
		t.Errorf("quiet output = %q, want %q", out.String(), canonicalBlock)
	}
}

func TestRun_QuietSingleEngine(t *testing.T) {
	withoutColors(t)

	var out, errBuf bytes.Buffer
	application, err := New([]string{"harmcalc", "-q", "--algo", "single"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}

	got := out.String()
	if !strings.Contains(got, "Float forward: 5.187378") {
		t.Errorf("output missing float32 line:\n%s", got)
	}
	if strings.Contains(got, "Double") {
		t.Errorf("single-engine run should not report float64 sums:\n%s", got)
	}
}

func TestRun_OutputFile(t *testing.T) {
	withoutColors(t)

	path := filepath.Join(t.TempDir(), "result.txt")
	var out, errBuf bytes.Buffer
	application, err := New([]string{"harmcalc", "-q", "-o", path}, &errBuf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if code := application.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved result: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "# Harmonic Series Summation Result") {
		t.Error("saved file missing metadata header")
	}
	if !strings.Contains(content, "Float difference: 9.5367431640625e-07") {
		t.Error("saved file missing the result block")
	}
}

func TestRun_Completion(t *testing.T) {
	var out, errBuf bytes.Buffer
	application, err := New([]string{"harmcalc", "--completion", "bash"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if code := application.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(out.String(), "_harmcalc_completions") {
		t.Error("bash completion script missing completion function")
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"long flag", []string{"--version"}, true},
		{"short flag", []string{"-V"}, true},
		{"single dash", []string{"-version"}, true},
		{"absent", []string{"-n", "100"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasVersionFlag(tt.args); got != tt.want {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.Contains(out.String(), "harmcalc version") {
		t.Errorf("version banner = %q", out.String())
	}
}
