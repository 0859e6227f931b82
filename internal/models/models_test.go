package models

import "testing"

func TestParseDecision(t *testing.T) {
	tests := []struct {
		input   string
		want    Decision
		wantErr bool
	}{
		{"bought", DecisionBought, false},
		{"saved", DecisionSaved, false},
		{"Saved", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecision(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecision(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDecision(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSettingsIsSetup(t *testing.T) {
	if (Settings{}).IsSetup() {
		t.Error("empty settings reported as set up")
	}
	if !(Settings{MonthlyNetSalary: 450000}).IsSetup() {
		t.Error("settings with a salary reported as not set up")
	}
}
