package service

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"invitation_backend/config"
	"invitation_backend/models"
	"invitation_backend/utils"

	"golang.org/x/exp/slices"
)

func TestMain(m *testing.M) {
	config.Config.Mode = "test"
	models.InitDB()
	os.Exit(m.Run())
}

func mustCreateOffer(t *testing.T, name string, codes ...string) *models.Offer {
	t.Helper()
	offer, err := models.CreateOffer(models.DB, name, name+" title", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(codes) > 0 {
		_, err = ImportCodes(name, codes)
		if err != nil {
			t.Fatal(err)
		}
	}
	return offer
}

func TestClaimUnknownOffer(t *testing.T) {
	_, err := ClaimCode("claim-no-such-offer", "1.1.1.1", "ua")
	if !errors.Is(err, utils.ErrOfferNotFound) {
		t.Fatalf("want ErrOfferNotFound, got %v", err)
	}
}

func TestClaimInactiveOffer(t *testing.T) {
	offer := mustCreateOffer(t, "claim-inactive", "CODE-1")
	err := models.DB.Model(offer).Update("is_active", false).Error
	if err != nil {
		t.Fatal(err)
	}

	_, err = ClaimCode("claim-inactive", "1.1.1.1", "ua")
	if !errors.Is(err, utils.ErrOfferNotFound) {
		t.Fatalf("inactive offer must look like a missing one, got %v", err)
	}
}

func TestClaimExhausted(t *testing.T) {
	mustCreateOffer(t, "claim-empty")
	_, err := ClaimCode("claim-empty", "1.1.1.1", "ua")
	if !errors.Is(err, utils.ErrCodesExhausted) {
		t.Fatalf("want ErrCodesExhausted, got %v", err)
	}
}

func TestClaimRecordsUsageMetadata(t *testing.T) {
	offer := mustCreateOffer(t, "claim-metadata", "META-1")

	code, err := ClaimCode("claim-metadata", "9.9.9.9", "test-agent")
	if err != nil {
		t.Fatal(err)
	}
	if code != "META-1" {
		t.Fatalf("want META-1, got %s", code)
	}

	var row models.InvitationCode
	err = models.DB.Take(&row, "offer_id = ? AND code = ?", offer.ID, code).Error
	if err != nil {
		t.Fatal(err)
	}
	if !row.IsUsed || row.UsedAt == nil {
		t.Fatal("claimed code must be marked used with a timestamp")
	}
	if row.UserIP != "9.9.9.9" || row.UserAgent != "test-agent" {
		t.Fatalf("usage metadata not captured: %+v", row)
	}
}

func TestClaimConcurrencyExactness(t *testing.T) {
	const (
		seeded     = 5
		concurrent = 20
	)

	codes := make([]string, 0, seeded)
	for i := 0; i < seeded; i++ {
		codes = append(codes, fmt.Sprintf("CONC-%04d", i))
	}
	mustCreateOffer(t, "claim-concurrent", codes...)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		claimed   []string
		exhausted int
	)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := ClaimCode("claim-concurrent", "2.2.2.2", "ua")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				claimed = append(claimed, code)
			} else if errors.Is(err, utils.ErrCodesExhausted) {
				exhausted++
			} else {
				t.Errorf("unexpected claim error: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(claimed) != seeded {
		t.Fatalf("want exactly %d successful claims, got %d", seeded, len(claimed))
	}
	if exhausted != concurrent-seeded {
		t.Fatalf("want %d exhausted claims, got %d", concurrent-seeded, exhausted)
	}

	slices.Sort(claimed)
	if got := slices.Compact(slices.Clone(claimed)); len(got) != len(claimed) {
		t.Fatalf("claims handed out a code twice: %v", claimed)
	}
	for _, code := range claimed {
		if !slices.Contains(codes, code) {
			t.Fatalf("claimed code %q was never imported", code)
		}
	}

	offer, err := models.GetOfferByName(models.DB, "claim-concurrent")
	if err != nil {
		t.Fatal(err)
	}
	if offer.RemainingCount != 0 {
		t.Fatalf("remaining_count = %d after draining the pool", offer.RemainingCount)
	}
}

func TestClaimFewerThanPool(t *testing.T) {
	const (
		seeded     = 6
		concurrent = 4
	)

	codes := make([]string, 0, seeded)
	for i := 0; i < seeded; i++ {
		codes = append(codes, fmt.Sprintf("PART-%04d", i))
	}
	mustCreateOffer(t, "claim-partial", codes...)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed []string
	)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := ClaimCode("claim-partial", "3.3.3.3", "ua")
			if err != nil {
				t.Errorf("claim failed with codes left: %v", err)
				return
			}
			mu.Lock()
			claimed = append(claimed, code)
			mu.Unlock()
		}()
	}
	wg.Wait()

	slices.Sort(claimed)
	if got := slices.Compact(slices.Clone(claimed)); len(got) != concurrent {
		t.Fatalf("want %d distinct codes, got %v", concurrent, claimed)
	}

	offer, err := models.GetOfferByName(models.DB, "claim-partial")
	if err != nil {
		t.Fatal(err)
	}
	if offer.RemainingCount != seeded-concurrent {
		t.Fatalf("remaining_count = %d, want %d", offer.RemainingCount, seeded-concurrent)
	}
}
