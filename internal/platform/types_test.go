package platform

import (
	"testing"

	"github.com/mj1618/desktop-tree/internal/model"
)

func TestParseRegion_Valid(t *testing.T) {
	b, err := ParseRegion("10,20,300,400")
	if err != nil {
		t.Fatal(err)
	}
	want := model.BoundingBox{Left: 10, Top: 20, Right: 300, Bottom: 400}
	if *b != want {
		t.Errorf("got %+v, want %+v", *b, want)
	}
}

func TestParseRegion_WithSpaces(t *testing.T) {
	b, err := ParseRegion("10, 20, 300, 400")
	if err != nil {
		t.Fatal(err)
	}
	if b.Left != 10 || b.Top != 20 || b.Right != 300 || b.Bottom != 400 {
		t.Errorf("got %+v, want {10 20 300 400}", b)
	}
}

func TestParseRegion_Invalid(t *testing.T) {
	tests := []string{
		"",
		"10,20,300",
		"10,20,300,400,500",
		"a,b,c,d",
		"10,20,abc,400",
		"300,20,10,400",
	}
	for _, s := range tests {
		_, err := ParseRegion(s)
		if err == nil {
			t.Errorf("ParseRegion(%q) should fail", s)
		}
	}
}

func TestScrollInfo_Scrollable(t *testing.T) {
	tests := []struct {
		info ScrollInfo
		want bool
	}{
		{ScrollInfo{}, false},
		{ScrollInfo{Horizontal: true}, true},
		{ScrollInfo{Vertical: true}, true},
		{ScrollInfo{Horizontal: true, Vertical: true}, true},
	}
	for _, tt := range tests {
		if got := tt.info.Scrollable(); got != tt.want {
			t.Errorf("%+v.Scrollable() = %v, want %v", tt.info, got, tt.want)
		}
	}
}
