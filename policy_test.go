package passy

import (
	"encoding/json"
	"testing"
)

func TestOptionsPolicyMapping(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Policy
	}{
		{
			name: "alpha toggles both cases",
			json: `{"length":20,"use_alpha":true,"use_numeric":true,"use_symbols":false}`,
			want: Policy{Length: 20, UseLower: true, UseUpper: true, UseDigits: true},
		},
		{
			name: "single case",
			json: `{"length":8,"use_lower":true,"use_symbols":true,"avoid_ambiguous":true}`,
			want: Policy{Length: 8, UseLower: true, UseSymbols: true, AvoidAmbiguous: true},
		},
		{
			name: "nothing",
			json: `{"length":0}`,
			want: Policy{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Options
			if err := json.Unmarshal([]byte(tt.json), &o); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := o.Policy(); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if back := OptionsFromPolicy(tt.want).Policy(); back != tt.want {
				t.Fatalf("wire form lost information: %+v", back)
			}
		})
	}
}

func TestOptionsFromPolicyUsesAlphaSwitch(t *testing.T) {
	o := OptionsFromPolicy(DefaultPolicy())
	if !o.UseAlpha || o.UseLower || o.UseUpper {
		t.Fatalf("expected use_alpha only, got %+v", o)
	}
	o = OptionsFromPolicy(Policy{UseUpper: true})
	if o.UseAlpha || !o.UseUpper || o.UseLower {
		t.Fatalf("expected use_upper only, got %+v", o)
	}
}

func TestPolicyFastPathSelection(t *testing.T) {
	tests := []struct {
		policy Policy
		fast   bool
	}{
		{Policy{UseLower: true, UseUpper: true, UseDigits: true}, true},
		{Policy{UseLower: true, UseUpper: true, UseDigits: true, AvoidAmbiguous: true}, true},
		{Policy{UseLower: true, UseUpper: true, UseDigits: true, UseSymbols: true}, false},
		{Policy{UseLower: true, UseDigits: true}, false},
		{Policy{UseLower: true, UseUpper: true}, false},
		{Policy{}, false},
	}
	for _, tt := range tests {
		if got := tt.policy.fastPath(); got != tt.fast {
			t.Fatalf("%+v: expected fast=%v, got %v", tt.policy, tt.fast, got)
		}
	}
}

func TestClampedLength(t *testing.T) {
	for in, want := range map[int]int{-1: 1, 0: 1, 1: 1, 512: 512, 1024: 1024, 1025: 1024} {
		if got := (Policy{Length: in}).ClampedLength(); got != want {
			t.Fatalf("length %d: expected %d, got %d", in, want, got)
		}
	}
}
