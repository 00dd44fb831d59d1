package refnum

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestGenerate_Format(t *testing.T) {
	pattern := regexp.MustCompile(fmt.Sprintf(`^IDL-%d-\d{6}$`, time.Now().Year()))

	for i := 0; i < 20; i++ {
		ref, err := Generate("IDL")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if !pattern.MatchString(ref) {
			t.Errorf("reference %q does not match %v", ref, pattern)
		}
	}
}

func TestGenerateUnique_FirstCandidateFree(t *testing.T) {
	calls := 0
	ref, err := GenerateUnique(context.Background(), "BCR", func(_ context.Context, _ string) (bool, error) {
		calls++
		return false, nil
	})
	if err != nil {
		t.Fatalf("GenerateUnique failed: %v", err)
	}
	if ref == "" {
		t.Error("reference should not be empty")
	}
	if calls != 1 {
		t.Errorf("exists check called %d times, want 1", calls)
	}
}

func TestGenerateUnique_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	ref, err := GenerateUnique(context.Background(), "BRG", func(_ context.Context, _ string) (bool, error) {
		calls++
		return calls < 4, nil // first three candidates collide
	})
	if err != nil {
		t.Fatalf("GenerateUnique failed: %v", err)
	}
	if ref == "" {
		t.Error("reference should not be empty")
	}
	if calls != 4 {
		t.Errorf("exists check called %d times, want 4", calls)
	}
}

func TestGenerateUnique_ExhaustedAfterFiveCollisions(t *testing.T) {
	calls := 0
	_, err := GenerateUnique(context.Background(), "VRG", func(_ context.Context, _ string) (bool, error) {
		calls++
		return true, nil
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("error = %v, want ErrExhausted", err)
	}
	if calls != MaxAttempts {
		t.Errorf("exists check called %d times, want exactly %d", calls, MaxAttempts)
	}
}

func TestGenerateUnique_PropagatesCheckError(t *testing.T) {
	boom := errors.New("datastore unreachable")
	_, err := GenerateUnique(context.Background(), "HAP", func(_ context.Context, _ string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the check error", err)
	}
}
