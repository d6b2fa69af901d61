package domain

import (
	"encoding/json"
	"testing"
)

func TestParseSetType(t *testing.T) {
	tests := []struct {
		in      string
		want    SetType
		wantErr bool
	}{
		{in: "Normal", want: SetNormal},
		{in: "normal", want: SetNormal},
		{in: "DROPSET", want: SetDropSet},
		{in: "myoreps", want: SetMyoReps},
		{in: "MaxRM", want: SetMaxRM},
		{in: "superset", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSetType(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSetType(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSetType(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSetType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetTypeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    SetType
		wantErr bool
	}{
		{name: "tag", in: `"Cluster"`, want: SetCluster},
		{name: "tag case-insensitive", in: `"negatives"`, want: SetNegatives},
		{name: "empty means normal", in: `""`, want: SetNormal},
		{name: "legacy ordinal", in: `3`, want: SetMyoReps},
		{name: "ordinal zero", in: `0`, want: SetNormal},
		{name: "ordinal out of range", in: `6`, wantErr: true},
		{name: "negative ordinal", in: `-1`, wantErr: true},
		{name: "unknown tag", in: `"superset"`, wantErr: true},
		{name: "wrong type", in: `{"a":1}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SetType
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("unmarshal %s = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("unmarshal %s = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
