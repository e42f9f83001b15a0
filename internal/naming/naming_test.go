package naming

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want string
	}{
		{"simple phrase", "Build a calculator web app", "build-a-calculator-web-app"},
		{"already clean", "fix-login-bug", "fix-login-bug"},
		{"case folded", "RefactorAuthModule", "refactorauthmodule"},
		{"underscores kept", "snake_case_objective", "snake_case_objective"},
		{"punctuation dropped", "ship it! (v2.0)", "ship-it-v20"},
		{"separator runs collapse", "a  --  b", "a-b"},
		{"leading trailing trimmed", "  --hello--  ", "hello"},
		{"unicode dropped", "héllo wörld", "hllo-wrld"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.seed); got != tt.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tt.seed, got, tt.want)
			}
		})
	}
}

func TestSanitize_TruncatesBeforeSanitizing(t *testing.T) {
	seed := ""
	for i := 0; i < 30; i++ {
		seed += "ab "
	}
	got := Sanitize(seed)
	// 50 source chars = 16 full "ab " groups + "ab" = 16*3+2.
	want := "ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab"
	if got != want {
		t.Fatalf("Sanitize(long) = %q, want %q", got, want)
	}
}

func TestSanitize_OutputCharset(t *testing.T) {
	re := regexp.MustCompile(`^[a-z0-9][a-z0-9-_]*$`)
	seeds := []string{
		"Build a calculator web app",
		"UPPER CASE ONLY",
		"tabs\tand\nnewlines",
		"trailing dots...",
		"123 numbers first",
	}
	for _, seed := range seeds {
		got := Sanitize(seed)
		if !re.MatchString(got) {
			t.Errorf("Sanitize(%q) = %q, contains forbidden characters", seed, got)
		}
		if len(got) > MaxSeedLen {
			t.Errorf("Sanitize(%q) = %q, longer than %d", seed, got, MaxSeedLen)
		}
	}
}

func TestSanitize_EmptyFallsBackToTimestamp(t *testing.T) {
	restore := now
	defer func() { now = restore }()
	now = func() time.Time {
		return time.Date(2024, 3, 9, 14, 30, 45, 0, time.UTC)
	}

	for _, seed := range []string{"", "   ", "!!!", "日本語"} {
		got := Sanitize(seed)
		want := "objective-20240309-143045"
		if got != want {
			t.Fatalf("Sanitize(%q) = %q, want fallback %q", seed, got, want)
		}
	}
}

func TestSanitize_Deterministic(t *testing.T) {
	seed := "Deterministic? Yes — deterministic."
	first := Sanitize(seed)
	for i := 0; i < 5; i++ {
		if got := Sanitize(seed); got != first {
			t.Fatalf("Sanitize not deterministic: %q then %q", first, got)
		}
	}
}

func TestSeedFromArg_RawText(t *testing.T) {
	seed, objective, err := SeedFromArg("  Build a calculator web app  ")
	if err != nil {
		t.Fatalf("SeedFromArg error = %v", err)
	}
	if seed != "Build a calculator web app" || objective != seed {
		t.Fatalf("seed=%q objective=%q, want raw text for both", seed, objective)
	}
}

func TestSeedFromArg_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calculator-app.md")
	content := "Build a calculator web app.\nIt should support history.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	seed, objective, err := SeedFromArg(path)
	if err != nil {
		t.Fatalf("SeedFromArg error = %v", err)
	}
	if seed != "calculator-app" {
		t.Fatalf("seed = %q, want base name without extension", seed)
	}
	if objective != "Build a calculator web app.\nIt should support history." {
		t.Fatalf("objective = %q, want trimmed file contents", objective)
	}
}

func TestSeedFromArg_DirectoryTreatedAsText(t *testing.T) {
	dir := t.TempDir()
	seed, objective, err := SeedFromArg(dir)
	if err != nil {
		t.Fatalf("SeedFromArg error = %v", err)
	}
	if seed != dir || objective != dir {
		t.Fatalf("directory argument should fall back to raw text, got seed=%q", seed)
	}
}
