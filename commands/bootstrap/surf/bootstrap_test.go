package bootstrap

import (
	"io"
	"testing"
)

func TestBuildModuleWithoutCommands(t *testing.T) {
	res, err := BuildModule(Options{Recursive: true})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if res.Module == nil {
		t.Fatal("expected module")
	}
	if res.Collector != nil {
		t.Fatal("expected no collector when commands disabled")
	}
}

func TestBuildModuleCollectsHandlers(t *testing.T) {
	res, err := BuildModule(Options{
		BaseDir:        t.TempDir(),
		EnableCommands: true,
		Output:         io.Discard,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if res.Collector == nil {
		t.Fatal("expected collector when commands enabled")
	}
	if got := len(res.Collector.Handlers()); got != 3 {
		t.Fatalf("expected three collected handlers, got %d", got)
	}
}

func TestSplitPatterns(t *testing.T) {
	got := SplitPatterns(" *.surf , *.md ,")
	if len(got) != 2 || got[0] != "*.surf" || got[1] != "*.md" {
		t.Fatalf("unexpected patterns: %v", got)
	}
	if SplitPatterns("   ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
