package common

import (
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Ingredient string `json:"ingredient"`
	}
	if err := DecodeJSON(strings.NewReader(`{"ingredient":"tomato"}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Ingredient != "tomato" {
		t.Errorf("got %q, want %q", v.Ingredient, "tomato")
	}
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	if err := DecodeJSON(strings.NewReader(`{"a":1}{"b":2}`), &v); err == nil {
		t.Fatal("expected error for trailing JSON data")
	}
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	var v map[string]interface{}
	if err := DecodeJSON(strings.NewReader(`not json`), &v); err == nil {
		t.Fatal("expected error for malformed input")
	}
}
