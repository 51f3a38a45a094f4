package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/activity"
	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/middleware"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/storage/sqlite"
	"github.com/mmynk/roomieboard/pkg/roomiev1"
	"github.com/mmynk/roomieboard/pkg/roomiev1/roomiev1connect"
)

const testRoommateHeader = "X-Test-Roommate"

var testNames = map[string]string{
	"alice": "Alice",
	"bob":   "Bob",
	"carol": "Carol",
	"dave":  "Dave",
}

// testAuthInterceptor trusts the roommate named in a test header instead of a token.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if id := req.Header().Get(testRoommateHeader); id != "" {
				ctx = middleware.WithIdentity(ctx, auth.Identity{
					RoommateID: id,
					Email:      id + "@example.com",
					Name:       testNames[id],
				})
			}
			return next(ctx, req)
		}
	}
}

// as builds a request made by the given roommate.
func as[T any](roommateID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testRoommateHeader, roommateID)
	return req
}

type testClients struct {
	bills    *roomiev1connect.BillServiceClient
	roster   *roomiev1connect.RosterServiceClient
	activity *roomiev1connect.ActivityServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	recorder := activity.NewRecorder(store)
	authInterceptor := connect.WithInterceptors(testAuthInterceptor())

	mux := http.NewServeMux()
	mux.Handle(roomiev1connect.NewBillServiceHandler(NewBillService(store, recorder, money.MustFormatter("USD")), authInterceptor))
	mux.Handle(roomiev1connect.NewRosterServiceHandler(NewRosterService(store, recorder), authInterceptor))
	mux.Handle(roomiev1connect.NewActivityServiceHandler(NewActivityService(store), authInterceptor))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		recorder.Wait()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return testClients{
		bills:    roomiev1connect.NewBillServiceClient(http.DefaultClient, server.URL),
		roster:   roomiev1connect.NewRosterServiceClient(http.DefaultClient, server.URL),
		activity: roomiev1connect.NewActivityServiceClient(http.DefaultClient, server.URL),
	}
}

// seedRoster creates profiles for the given roommates in order.
func seedRoster(t *testing.T, c testClients, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := c.roster.UpsertProfile(context.Background(), as(id, &roomiev1.UpsertProfileRequest{Name: testNames[id]}))
		if err != nil {
			t.Fatalf("UpsertProfile(%s) failed: %v", id, err)
		}
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
