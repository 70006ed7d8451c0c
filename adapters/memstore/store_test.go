package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jamiesoo123/ENG40011-EndoMML/domain/core"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

// TestSessionRoundTrip tests save, get and delete of wizard state
func TestSessionRoundTrip(t *testing.T) {
	store := New(time.Minute)
	ctx := context.Background()

	state := wizard.NewState(core.NewSessionID())
	state.PageIndex = 2
	state.Answers["Pain"] = "Yes"

	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, state.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.PageIndex != 2 || got.Answers["Pain"] != "Yes" {
		t.Errorf("Unexpected stored state: %+v", got)
	}

	if err := store.Delete(ctx, state.SessionID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, state.SessionID); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
}

// TestGetReturnsIndependentState tests that callers never share the stored
// answer map
func TestGetReturnsIndependentState(t *testing.T) {
	store := New(time.Minute)
	ctx := context.Background()

	state := wizard.NewState(core.NewSessionID())
	state.Answers["Pain"] = "Yes"
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the caller's map after Save leaves the stored copy alone
	state.Answers["Pain"] = "No"
	a, err := store.Get(ctx, state.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if a.Answers["Pain"] != "Yes" {
		t.Errorf("Expected stored answer 'Yes', got '%s'", a.Answers["Pain"])
	}

	// Mutating one fetched copy is invisible to the next
	a.Answers["Severity"] = "7"
	b, err := store.Get(ctx, state.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := b.Answers["Severity"]; ok {
		t.Error("Expected fetched states to hold independent answer maps")
	}
}

// TestConcurrentSessionAccess tests parallel handlers reading and writing
// one session; run with -race
func TestConcurrentSessionAccess(t *testing.T) {
	store := New(time.Minute)
	ctx := context.Background()

	state := wizard.NewState(core.NewSessionID())
	state.Answers["Pain"] = "Yes"
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := store.Get(ctx, state.SessionID)
			if err != nil {
				t.Errorf("Get failed: %v", err)
				return
			}
			got.Answers[core.FeatureKey(fmt.Sprintf("Q%d", n))] = "x"
			for range got.Answers {
			}
			if err := store.Save(ctx, *got); err != nil {
				t.Errorf("Save failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
}

// TestGetUnknownSession tests the not-found sentinel
func TestGetUnknownSession(t *testing.T) {
	store := New(time.Minute)
	if _, err := store.Get(context.Background(), core.NewSessionID()); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

// TestResultRoundTrip tests the paired result and vector hand-off
func TestResultRoundTrip(t *testing.T) {
	store := New(time.Minute)
	ctx := context.Background()
	id := core.NewSessionID()

	result := ports.SurveyResult{
		Prediction:  ports.Prediction{Prob1: 0.82, Pred: 1, Label: "Endometriosis"},
		Answers:     wizard.Answers{"Pain": "Yes"},
		SubmittedAt: core.Now(),
	}
	vector := wizard.Vector{"Pain": 1}

	if err := store.SaveResult(ctx, id, result, vector); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	got, err := store.GetResult(ctx, id)
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if got.Prob1 != 0.82 || got.Answers["Pain"] != "Yes" {
		t.Errorf("Unexpected stored result: %+v", got)
	}

	v, err := store.GetVector(ctx, id)
	if err != nil {
		t.Fatalf("GetVector failed: %v", err)
	}
	if v["Pain"] != 1 {
		t.Errorf("Unexpected stored vector: %v", v)
	}
}

// TestResultMissing tests the no-result sentinel for fresh sessions
func TestResultMissing(t *testing.T) {
	store := New(time.Minute)
	id := core.NewSessionID()

	if _, err := store.GetResult(context.Background(), id); !errors.Is(err, core.ErrNoResult) {
		t.Errorf("Expected ErrNoResult, got %v", err)
	}
	if _, err := store.GetVector(context.Background(), id); !errors.Is(err, core.ErrNoResult) {
		t.Errorf("Expected ErrNoResult, got %v", err)
	}
}

// TestExpiry tests that entries lapse after the TTL
func TestExpiry(t *testing.T) {
	store := New(time.Nanosecond)
	ctx := context.Background()

	state := wizard.NewState(core.NewSessionID())
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.SaveResult(ctx, state.SessionID, ports.SurveyResult{}, nil); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	time.Sleep(time.Millisecond)

	if _, err := store.Get(ctx, state.SessionID); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("Expected expired session, got %v", err)
	}
	if _, err := store.GetResult(ctx, state.SessionID); !errors.Is(err, core.ErrNoResult) {
		t.Errorf("Expected expired result, got %v", err)
	}
}
