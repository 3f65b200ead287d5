package services

import (
	"reflect"
	"testing"

	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
)

func TestMergeBuyerSeller(t *testing.T) {
	buyers := []dto.ClubTotal{{Club: "Club1", Total: 10}, {Club: "Club2", Total: 5}}
	sellers := []dto.ClubTotal{{Club: "Club2", Total: 3}, {Club: "Club3", Total: 7}}

	got := mergeBuyerSeller(buyers, sellers, 12)
	want := []clubRank{
		{club: "Club1", buyer: 10, seller: 0},
		{club: "Club3", buyer: 0, seller: 7},
		{club: "Club2", buyer: 5, seller: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestMergeBuyerSellerDropsZeroAndTruncates(t *testing.T) {
	buyers := []dto.ClubTotal{{Club: " A ", Total: 4}, {Club: "B", Total: 0}, {Club: "C", Total: 9}}
	sellers := []dto.ClubTotal{{Club: "D", Total: 6}}

	got := mergeBuyerSeller(buyers, sellers, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 clubs, got %d", len(got))
	}
	if got[0].club != "C" || got[1].club != "D" {
		t.Errorf("unexpected order: %+v", got)
	}
	for _, r := range got {
		if r.club == "B" {
			t.Error("club with no volume kept")
		}
	}
}

func TestCountTopTiesKeepFirstSeen(t *testing.T) {
	got := countTop([]string{"MF", "GK", " ", "GK", "MF", "CB", ""}, 0)
	want := []labelTally{{label: "MF", count: 2}, {label: "GK", count: 2}, {label: "CB", count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestCountTopLimit(t *testing.T) {
	got := countTop([]string{"a", "b", "b", "c", "c", "c"}, 2)
	if len(got) != 2 || got[0].label != "c" || got[1].label != "b" {
		t.Fatalf("unexpected ranking %+v", got)
	}
}

func TestShortLabel(t *testing.T) {
	if got := shortLabel("Short Agency"); got != "Short Agency" {
		t.Errorf("short label changed: %s", got)
	}
	got := shortLabel("Representações Esportivas Ltda")
	if got != "Representações Esp…" {
		t.Errorf("unexpected truncation: %s", got)
	}
}
