//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/railbird/pokerledger/test/integration/testutil"
)

type sessionResult struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	SessionDate string    `json:"session_date"`
	BuyIn       int64     `json:"buy_in"`
	Winnings    int64     `json:"winnings"`
	Profit      int64     `json:"profit"`
}

func sessionPath(ownerID, sessionID uuid.UUID) string {
	return "/players/" + ownerID.String() + "/sessions/" + sessionID.String()
}

func TestSessionLifecycle(t *testing.T) {
	env := testutil.NewTestEnv(t)

	playerID := env.CreatePlayer("alice")

	// Record
	resp := env.POST("/sessions", map[string]interface{}{
		"owner_id":     playerID,
		"session_date": "2023-06-15",
		"buy_in":       10000,
		"winnings":     15000,
	})
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var created sessionResult
	testutil.DecodeJSON(t, resp, &created)
	if created.Profit != 5000 {
		t.Errorf("expected profit 5000, got %d", created.Profit)
	}
	if created.SessionDate != "2023-06-15" {
		t.Errorf("expected session_date 2023-06-15, got %q", created.SessionDate)
	}

	// Read back
	resp = env.GET(sessionPath(playerID, created.ID))
	testutil.AssertStatus(t, resp, http.StatusOK)
	var fetched sessionResult
	testutil.DecodeJSON(t, resp, &fetched)
	if fetched.ID != created.ID || fetched.Profit != 5000 {
		t.Errorf("fetched session mismatch: %+v", fetched)
	}

	// Full replacement update; profit is recomputed
	resp = env.PUT(sessionPath(playerID, created.ID), map[string]interface{}{
		"session_date": "2023-06-16",
		"buy_in":       10000,
		"winnings":     16000,
	})
	testutil.AssertStatus(t, resp, http.StatusOK)
	var updated sessionResult
	testutil.DecodeJSON(t, resp, &updated)
	if updated.Profit != 6000 {
		t.Errorf("expected profit 6000 after update, got %d", updated.Profit)
	}
	if updated.SessionDate != "2023-06-16" {
		t.Errorf("expected session_date 2023-06-16, got %q", updated.SessionDate)
	}

	// Player total reflects the update
	resp = env.GET("/players/" + playerID.String())
	var player struct {
		TotalProfit int64 `json:"total_profit"`
	}
	testutil.DecodeJSON(t, resp, &player)
	if player.TotalProfit != 6000 {
		t.Errorf("expected total_profit 6000, got %d", player.TotalProfit)
	}

	// Delete
	resp = env.DELETE(sessionPath(playerID, created.ID))
	testutil.AssertStatus(t, resp, http.StatusOK)
	var deleted struct {
		Detail string `json:"detail"`
	}
	testutil.DecodeJSON(t, resp, &deleted)
	if deleted.Detail != "session deleted" {
		t.Errorf("unexpected delete detail: %q", deleted.Detail)
	}

	// Gone
	resp = env.GET(sessionPath(playerID, created.ID))
	testutil.AssertStatus(t, resp, http.StatusNotFound)

	resp = env.GET("/players/" + playerID.String())
	testutil.DecodeJSON(t, resp, &player)
	if player.TotalProfit != 0 {
		t.Errorf("expected total_profit 0 after delete, got %d", player.TotalProfit)
	}
}

func TestCreateSession_UnknownOwner(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/sessions", map[string]interface{}{
		"owner_id":     uuid.New(),
		"session_date": "2023-06-15",
		"buy_in":       10000,
		"winnings":     0,
	})
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	testutil.AssertErrorCode(t, resp, "NOT_FOUND")
}

func TestCreateSession_Validation(t *testing.T) {
	env := testutil.NewTestEnv(t)

	playerID := env.CreatePlayer("alice")

	t.Run("negative buy_in", func(t *testing.T) {
		resp := env.POST("/sessions", map[string]interface{}{
			"owner_id":     playerID,
			"session_date": "2023-06-15",
			"buy_in":       -100,
			"winnings":     0,
		})
		testutil.AssertStatus(t, resp, http.StatusBadRequest)
		testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
	})

	t.Run("missing session_date", func(t *testing.T) {
		resp := env.POST("/sessions", map[string]interface{}{
			"owner_id": playerID,
			"buy_in":   10000,
			"winnings": 0,
		})
		testutil.AssertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("malformed session_date", func(t *testing.T) {
		resp := env.POST("/sessions", map[string]interface{}{
			"owner_id":     playerID,
			"session_date": "15-06-2023",
			"buy_in":       10000,
			"winnings":     0,
		})
		testutil.AssertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("negative winnings accepted", func(t *testing.T) {
		resp := env.POST("/sessions", map[string]interface{}{
			"owner_id":     playerID,
			"session_date": "2023-06-15",
			"buy_in":       0,
			"winnings":     -5000,
		})
		testutil.AssertStatus(t, resp, http.StatusCreated)
		var created sessionResult
		testutil.DecodeJSON(t, resp, &created)
		if created.Profit != -5000 {
			t.Errorf("expected profit -5000, got %d", created.Profit)
		}
	})
}

// Another player's session must be indistinguishable from a nonexistent
// one: same status, same error code, on every scoped operation.
func TestSessionOwnershipScoping(t *testing.T) {
	env := testutil.NewTestEnv(t)

	aliceID := env.CreatePlayer("alice")
	bobID := env.CreatePlayer("bob")
	sessionID := env.RecordSession(aliceID, "2023-06-15", 10000, 15000)

	update := map[string]interface{}{
		"session_date": "2023-06-16",
		"buy_in":       1,
		"winnings":     1,
	}

	t.Run("get", func(t *testing.T) {
		resp := env.GET(sessionPath(bobID, sessionID))
		testutil.AssertStatus(t, resp, http.StatusNotFound)
		testutil.AssertErrorCode(t, resp, "NOT_FOUND")
	})

	t.Run("update", func(t *testing.T) {
		resp := env.PUT(sessionPath(bobID, sessionID), update)
		testutil.AssertStatus(t, resp, http.StatusNotFound)
		testutil.AssertErrorCode(t, resp, "NOT_FOUND")
	})

	t.Run("delete", func(t *testing.T) {
		resp := env.DELETE(sessionPath(bobID, sessionID))
		testutil.AssertStatus(t, resp, http.StatusNotFound)
		testutil.AssertErrorCode(t, resp, "NOT_FOUND")
	})

	t.Run("session is untouched", func(t *testing.T) {
		resp := env.GET(sessionPath(aliceID, sessionID))
		testutil.AssertStatus(t, resp, http.StatusOK)
		var fetched sessionResult
		testutil.DecodeJSON(t, resp, &fetched)
		if fetched.Winnings != 15000 {
			t.Errorf("expected winnings 15000, got %d", fetched.Winnings)
		}
	})
}

func TestUpdateSession_OwnershipReassignmentRejected(t *testing.T) {
	env := testutil.NewTestEnv(t)

	aliceID := env.CreatePlayer("alice")
	bobID := env.CreatePlayer("bob")
	sessionID := env.RecordSession(aliceID, "2023-06-15", 10000, 15000)

	resp := env.PUT(sessionPath(aliceID, sessionID), map[string]interface{}{
		"owner_id":     bobID,
		"session_date": "2023-06-15",
		"buy_in":       10000,
		"winnings":     15000,
	})
	testutil.AssertStatus(t, resp, http.StatusBadRequest)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

func TestListSessions_DateFilter(t *testing.T) {
	env := testutil.NewTestEnv(t)

	playerID := env.CreatePlayer("alice")
	env.RecordSession(playerID, "2023-06-01", 1000, 0)
	env.RecordSession(playerID, "2023-07-01", 2000, 0)
	env.RecordSession(playerID, "2023-08-01", 3000, 0)

	base := "/players/" + playerID.String() + "/sessions/"

	t.Run("no filter returns all", func(t *testing.T) {
		resp := env.GET(base)
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(sessions))
		}
	})

	t.Run("range selects only sessions within bounds", func(t *testing.T) {
		resp := env.GET(base + "?start_date=2023-06-15&end_date=2023-07-15")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 1 {
			t.Fatalf("expected 1 session, got %d", len(sessions))
		}
		if sessions[0].SessionDate != "2023-07-01" {
			t.Errorf("expected 2023-07-01, got %q", sessions[0].SessionDate)
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		resp := env.GET(base + "?start_date=2023-06-01&end_date=2023-08-01")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(sessions))
		}
	})

	t.Run("start date alone", func(t *testing.T) {
		resp := env.GET(base + "?start_date=2023-07-01")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 2 {
			t.Fatalf("expected 2 sessions, got %d", len(sessions))
		}
	})

	t.Run("empty range", func(t *testing.T) {
		resp := env.GET(base + "?start_date=2024-01-01")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 0 {
			t.Fatalf("expected 0 sessions, got %d", len(sessions))
		}
	})

	t.Run("inverted bounds yield empty, not an error", func(t *testing.T) {
		resp := env.GET(base + "?start_date=2023-08-01&end_date=2023-06-01")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 0 {
			t.Fatalf("expected 0 sessions, got %d", len(sessions))
		}
	})
}

func TestListSessions_Pagination(t *testing.T) {
	env := testutil.NewTestEnv(t)

	playerID := env.CreatePlayer("alice")
	for i := 0; i < 15; i++ {
		env.RecordSession(playerID, fmt.Sprintf("2023-06-%02d", i+1), int64(1000*(i+1)), 0)
	}

	base := "/players/" + playerID.String() + "/sessions/"

	t.Run("default page is 10", func(t *testing.T) {
		resp := env.GET(base)
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 10 {
			t.Fatalf("expected 10 sessions, got %d", len(sessions))
		}
		// Insertion order: the first page starts with the first session.
		if sessions[0].BuyIn != 1000 {
			t.Errorf("expected first buy_in 1000, got %d", sessions[0].BuyIn)
		}
	})

	t.Run("skip past first page", func(t *testing.T) {
		resp := env.GET(base + "?skip=10")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 5 {
			t.Fatalf("expected 5 sessions, got %d", len(sessions))
		}
		if sessions[0].BuyIn != 11000 {
			t.Errorf("expected first buy_in 11000, got %d", sessions[0].BuyIn)
		}
	})

	t.Run("skip past everything", func(t *testing.T) {
		resp := env.GET(base + "?skip=20")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 0 {
			t.Fatalf("expected 0 sessions, got %d", len(sessions))
		}
	})

	t.Run("explicit limit", func(t *testing.T) {
		resp := env.GET(base + "?skip=2&limit=3")
		testutil.AssertStatus(t, resp, http.StatusOK)
		var sessions []sessionResult
		testutil.DecodeJSON(t, resp, &sessions)
		if len(sessions) != 3 {
			t.Fatalf("expected 3 sessions, got %d", len(sessions))
		}
		if sessions[0].BuyIn != 3000 {
			t.Errorf("expected first buy_in 3000, got %d", sessions[0].BuyIn)
		}
	})

	t.Run("negative values rejected", func(t *testing.T) {
		for _, q := range []string{"?skip=-1", "?limit=-1"} {
			resp := env.GET(base + q)
			testutil.AssertStatus(t, resp, http.StatusBadRequest)
			testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
		}
	})
}

func TestSessionLifecycle_WritesOutboxEvents(t *testing.T) {
	env := testutil.NewTestEnv(t)

	playerID := env.CreatePlayer("alice")
	sessionID := env.RecordSession(playerID, "2023-06-15", 10000, 15000)

	resp := env.PUT(sessionPath(playerID, sessionID), map[string]interface{}{
		"session_date": "2023-06-15",
		"buy_in":       10000,
		"winnings":     16000,
	})
	resp.Body.Close()
	resp = env.DELETE(sessionPath(playerID, sessionID))
	resp.Body.Close()

	// recorded, revised, removed
	if n := testutil.CountOutboxEvents(env, sessionID.String()); n != 3 {
		t.Errorf("expected 3 outbox events for session, got %d", n)
	}
}
