package expression

import (
	"testing"
)

func TestEvaluateBool(t *testing.T) {
	engine := NewEngine()

	env := map[string]interface{}{
		"width_mm": 4.0,
		"depth_mm": 10.0,
	}

	tests := []struct {
		expr string
		want bool
	}{
		{"width_mm > 0 && depth_mm > 0", true},
		{"width_mm > 50", false},
		{"ABS(width_mm - 4.4) <= 0.5", true},
		{"MIN(width_mm, depth_mm) == 4.0", true},
		{"MAX(width_mm, depth_mm) == 10.0", true},
		{"ROUND(width_mm / 3, 2) == 1.33", true},
	}

	for _, tt := range tests {
		got, err := engine.EvaluateBool(tt.expr, env)
		if err != nil {
			t.Errorf("EvaluateBool(%q) error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EvaluateBool(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestEvaluateBool_NonBoolean(t *testing.T) {
	engine := NewEngine()
	if _, err := engine.EvaluateBool("1 + 1", map[string]interface{}{}); err == nil {
		t.Error("expected error for non-boolean expression")
	}
}

func TestCompile_Invalid(t *testing.T) {
	engine := NewEngine()
	if err := engine.Compile("width_mm >"); err == nil {
		t.Error("expected compile error for malformed expression")
	}
}

func TestProgramCache(t *testing.T) {
	engine := NewEngine()
	env := map[string]interface{}{"width_mm": 1.0}

	// Same expression twice: second run hits the cache and must agree
	first, err := engine.EvaluateBool("width_mm > 0", env)
	if err != nil {
		t.Fatalf("first evaluation failed: %v", err)
	}
	second, err := engine.EvaluateBool("width_mm > 0", env)
	if err != nil {
		t.Fatalf("cached evaluation failed: %v", err)
	}
	if first != second {
		t.Error("cached program produced a different result")
	}

	engine.ClearCache()
	if _, err := engine.EvaluateBool("width_mm > 0", env); err != nil {
		t.Fatalf("evaluation after ClearCache failed: %v", err)
	}
}
