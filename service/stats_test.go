package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"invitation_backend/models"
	"invitation_backend/utils"
)

func TestMaskCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"ABCD1234567", "***234567"},
		{"1234567", "***234567"},
		{"AB12", "***"},
		{"123456", "***"},
		{"", "***"},
	}
	for _, c := range cases {
		if got := MaskCode(c.code); got != c.want {
			t.Errorf("MaskCode(%q) = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestStatsUnknownOffer(t *testing.T) {
	_, err := GetOfferStats("stats-no-such-offer")
	if !errors.Is(err, utils.ErrOfferAbsent) {
		t.Fatalf("want ErrOfferAbsent, got %v", err)
	}
}

func TestStatsEmptyOffer(t *testing.T) {
	mustCreateOffer(t, "stats-empty")

	stats, err := GetOfferStats("stats-empty")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalCodes != 0 || stats.UsageRate != 0 {
		t.Fatalf("empty offer must report zero usage, got %+v", stats)
	}
	if len(stats.RecentClaims) != 0 {
		t.Fatalf("no claims expected, got %v", stats.RecentClaims)
	}
}

func TestStatsUsageRate(t *testing.T) {
	codes := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		codes = append(codes, fmt.Sprintf("RATE-%04d", i))
	}
	mustCreateOffer(t, "stats-rate", codes...)

	for i := 0; i < 7; i++ {
		_, err := ClaimCode("stats-rate", "5.5.5.5", "ua")
		if err != nil {
			t.Fatal(err)
		}
	}

	stats, err := GetOfferStats("stats-rate")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalCodes != 10 || stats.UsedCodes != 7 || stats.RemainingCodes != 3 {
		t.Fatalf("got %+v", stats)
	}
	if stats.UsageRate != 0.7 {
		t.Fatalf("usage_rate = %v, want 0.7", stats.UsageRate)
	}
}

func TestStatsRecentClaims(t *testing.T) {
	offer := mustCreateOffer(t, "stats-recent", "RECENT-CODE-01", "RECENT-CODE-02")

	_, err := ClaimCode("stats-recent", "6.6.6.6", "ua")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	_, err = ClaimCode("stats-recent", "7.7.7.7", "ua")
	if err != nil {
		t.Fatal(err)
	}

	stats, err := GetOfferStats("stats-recent")
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.RecentClaims) != 2 {
		t.Fatalf("want 2 recent claims, got %d", len(stats.RecentClaims))
	}

	// newest first
	if stats.RecentClaims[0].UserIP != "7.7.7.7" {
		t.Fatalf("recent claims not ordered by used_at desc: %+v", stats.RecentClaims)
	}
	if !stats.RecentClaims[0].ClaimedAt.After(stats.RecentClaims[1].ClaimedAt) {
		t.Fatalf("claim timestamps out of order: %+v", stats.RecentClaims)
	}

	for _, claim := range stats.RecentClaims {
		if claim.Code != "***CODE-01" && claim.Code != "***CODE-02" {
			t.Fatalf("code not masked to its last 6 characters: %q", claim.Code)
		}
	}

	// the raw code strings must never appear
	var rows models.InvitationCodes
	err = models.DB.Find(&rows, "offer_id = ?", offer.ID).Error
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		for _, claim := range stats.RecentClaims {
			if claim.Code == row.Code {
				t.Fatalf("unmasked code leaked: %q", claim.Code)
			}
		}
	}
}

func TestStatsRecentClaimsLimit(t *testing.T) {
	codes := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		codes = append(codes, fmt.Sprintf("LIMIT-%04d", i))
	}
	mustCreateOffer(t, "stats-limit", codes...)

	for i := 0; i < 12; i++ {
		_, err := ClaimCode("stats-limit", "8.8.8.8", "ua")
		if err != nil {
			t.Fatal(err)
		}
	}

	stats, err := GetOfferStats("stats-limit")
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.RecentClaims) != 10 {
		t.Fatalf("recent claims capped at 10, got %d", len(stats.RecentClaims))
	}
}
