package contract

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"city", "City"},
		{"lastName", "LastName"},
		{"_hidden", "Hidden"},
		{"m_value", "Value"},
		{"Exported", "Exported"},
		{"_", "_"},       // cleaning empties the name
		{"m_", "m_"},     // cleaning empties the name
		{"_1st", "_1st"}, // digit-leading after cleaning
		{"m_9", "m_9"},   // digit-leading after cleaning
		{"__x", "_x"},    // only one marker is stripped
		{"m_m_x", "M_x"}, // only one marker is stripped
		{"über", "Über"},
	}
	for _, tt := range tests {
		if got := CleanName(tt.in); got != tt.want {
			t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompanionNames(t *testing.T) {
	if got := EqualsName("lastName"); got != "Equals_LastName" {
		t.Errorf("EqualsName = %q", got)
	}
	if got := HashName("_score"); got != "GetHashCode_Score" {
		t.Errorf("HashName = %q", got)
	}
	if got := SetterName("city"); got != "SetCity" {
		t.Errorf("SetterName = %q", got)
	}
}
