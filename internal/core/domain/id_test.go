package domain

import (
	"encoding/json"
	"testing"
)

func TestID_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"number", `{"id":12}`, `{"id":12}`},
		{"numeric string", `{"id":"12"}`, `{"id":12}`},
		{"leading zeros", `{"id":"007"}`, `{"id":"007"}`},
		{"plus sign", `{"id":"+5"}`, `{"id":"+5"}`},
		{"negative", `{"id":-3}`, `{"id":-3}`},
		{"text", `{"id":"abc-1"}`, `{"id":"abc-1"}`},
		{"null", `{"id":null}`, `{"id":null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var v struct {
				ID ID `json:"id"`
			}
			if err := json.Unmarshal([]byte(tc.in), &v); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			out, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("marshal %q: %v", v.ID, err)
			}
			if string(out) != tc.want {
				t.Fatalf("got %s want %s", out, tc.want)
			}
		})
	}
}

func TestID_IsZero(t *testing.T) {
	if !ID("").IsZero() {
		t.Fatalf("empty id should be zero")
	}
	if ID("0").IsZero() {
		t.Fatalf("\"0\" is a set id")
	}
}
