package helpers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/termsim/internal/domain"
	configinfra "github.com/doeshing/termsim/internal/infrastructure/config"
)

func TestCalculateTopCommands(t *testing.T) {
	freq := map[string]int{"ls": 3, "cd": 3, "rm": 1, "cat": 2}

	got := CalculateTopCommands(freq, 3)
	want := []CommandStatistic{{Command: "cd", Count: 3}, {Command: "ls", Count: 3}, {Command: "cat", Count: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("top commands mismatch (-want +got):\n%s", diff)
	}

	if all := CalculateTopCommands(freq, 0); len(all) != 4 {
		t.Errorf("limit 0 returned %d entries", len(all))
	}
}

func TestCalculateSuccessRate(t *testing.T) {
	if got := CalculateSuccessRate(0, 0); got != 0 {
		t.Errorf("empty rate = %v", got)
	}
	if got := CalculateSuccessRate(3, 4); got != 75 {
		t.Errorf("rate = %v", got)
	}
}

func TestDeriveUndoHints(t *testing.T) {
	records := []domain.AuditRecord{
		{Command: "rm", Success: true},
		{Command: "rm", Success: true},
		{Command: "mv", Success: false},
		{Command: "ls", Success: true},
		{Command: "cp", Success: true},
	}

	got := DeriveUndoHints(records)
	want := []string{undoHints["cp"], undoHints["rm"]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hints mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedMapHelpers(t *testing.T) {
	root := map[string]interface{}{
		"shell": map[string]interface{}{"history_limit": 20},
	}

	if v, ok := TraverseNestedMap(root, []string{"shell", "history_limit"}); !ok || v != 20 {
		t.Errorf("traverse = %v, %v", v, ok)
	}
	if _, ok := TraverseNestedMap(root, []string{"shell", "history_limit", "deeper"}); ok {
		t.Error("traversal through a scalar should fail")
	}
	if _, ok := TraverseNestedMap(root, []string{"server"}); ok {
		t.Error("missing key should not be found")
	}

	if !SetNestedMapValue(root, []string{"server", "addr"}, ":9000") {
		t.Fatal("set failed")
	}
	if v, _ := TraverseNestedMap(root, []string{"server", "addr"}); v != ":9000" {
		t.Errorf("server.addr = %v", v)
	}
	if SetNestedMapValue(root, nil, 1) {
		t.Error("empty key path should fail")
	}
}

func TestParseYAMLValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{in: "5", want: 5},
		{in: "true", want: true},
		{in: "termsim", want: "termsim"},
		{in: "[a, b]", want: []interface{}{"a", "b"}},
		{in: "key: [unclosed", want: "key: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYAMLValue(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseYAMLValue(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestConfigMapRoundTrip(t *testing.T) {
	cfg := configinfra.DefaultConfig()

	m, err := ConfigToMap(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := TraverseNestedMap(m, []string{"server", "default_session"}); !ok || v != "default" {
		t.Errorf("server.default_session = %v, %v", v, ok)
	}

	back, err := MapToConfig(m)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
