package models

import "testing"

func TestValue(t *testing.T) {
	t.Run("ZeroIsAbsent", func(t *testing.T) {
		var v Value
		if v.Kind() != Absent || v.IsPresent() || !v.IsNull() {
			t.Errorf("unexpected zero value state: %s", v.Kind())
		}
		if v.Interface() != nil {
			t.Errorf("expected nil interface, got %v", v.Interface())
		}
	})

	t.Run("Null", func(t *testing.T) {
		v := NullValue()
		if !v.IsPresent() || !v.IsNull() {
			t.Error("expected present null value")
		}
		if _, ok := v.Bool(); ok {
			t.Error("null must not read as bool")
		}
	})

	t.Run("Accessors", func(t *testing.T) {
		if s, ok := StringValue("x").Str(); !ok || s != "x" {
			t.Error("string accessor failed")
		}
		if i, ok := IntValue(7).Int(); !ok || i != 7 {
			t.Error("int accessor failed")
		}
		if f, ok := FloatValue(-27).Float(); !ok || f != -27 {
			t.Error("float accessor failed")
		}
		if b, ok := BoolValue(true).Bool(); !ok || !b {
			t.Error("bool accessor failed")
		}
		if _, ok := IntValue(7).Float(); ok {
			t.Error("int must not read as float")
		}
	})

	t.Run("String", func(t *testing.T) {
		tests := []struct {
			v    Value
			want string
		}{
			{StringValue("abc"), "abc"},
			{IntValue(17034), "17034"},
			{FloatValue(-27), "-27"},
			{FloatValue(0.25), "0.25"},
			{BoolValue(false), "false"},
			{NullValue(), ""},
		}
		for _, tt := range tests {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("%s: expected %q, got %q", tt.v.Kind(), tt.want, got)
			}
		}
	})

	t.Run("Equal", func(t *testing.T) {
		if !IntValue(1).Equal(IntValue(1)) || IntValue(1).Equal(FloatValue(1)) {
			t.Error("unexpected equality result")
		}
	})
}

func TestInsightsRiskLevel(t *testing.T) {
	score := func(f float64) *float64 { return &f }
	tests := []struct {
		in   Insights
		want string
	}{
		{Insights{}, ""},
		{Insights{RiskScore: score(0.5)}, RiskLow},
		{Insights{RiskScore: score(5)}, RiskMedium},
		{Insights{RiskScore: score(30)}, RiskHigh},
	}
	for _, tt := range tests {
		if got := tt.in.RiskLevel(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
