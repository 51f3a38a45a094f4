package activity

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/mmynk/roomieboard/internal/auth"
	"github.com/mmynk/roomieboard/internal/models"
	"github.com/mmynk/roomieboard/internal/money"
	"github.com/mmynk/roomieboard/internal/roster"
	"github.com/mmynk/roomieboard/internal/storage/sqlite"
)

func testDirectory() *roster.Directory {
	return roster.NewDirectory([]models.Roommate{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
		{ID: "carol", Name: "Carol"},
	}, auth.Identity{})
}

func TestMessages(t *testing.T) {
	dir := testDirectory()
	usd := money.MustFormatter("USD")

	split := models.Bill{
		Description: "Electricity",
		TotalAmount: decimal.RequireFromString("120"),
		PaidBy:      "alice",
		Split:       models.NewSplitEvenly("alice", "bob", "carol"),
	}
	full := models.Bill{
		Description: "Concert ticket",
		TotalAmount: decimal.RequireFromString("45.5"),
		PaidBy:      "alice",
		Split:       models.FullyOwedBy{Debtor: "bob"},
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"split added", BillAdded(dir, usd, split), "Alice added bill: Electricity - $120.00 split among 3 people"},
		{"full added", BillAdded(dir, usd, full), "Alice added bill: Concert ticket - $45.50 owed by Bob"},
		{"settled", BillToggled(dir, models.Bill{PaidBy: "alice", Description: "Electricity", IsSettled: true}), "Alice settled bill: Electricity"},
		{"reopened", BillToggled(dir, models.Bill{PaidBy: "alice", Description: "Electricity"}), "Alice reopened bill: Electricity"},
		{"deleted", BillDeleted(dir, split), "Alice deleted bill: Electricity"},
		{"commented", Commented(dir, "carol", split), "Carol commented on bill: Electricity"},
		{"joined", Joined(models.Roommate{Name: "Dave"}), "Dave joined the household"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

type fakeNotifier struct {
	mu   sync.Mutex
	seen []string
	err  error
}

func (f *fakeNotifier) Name() string { return "fake" }

func (f *fakeNotifier) Notify(_ context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, n.Message)
	return f.err
}

func setupStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "activity-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecorder(t *testing.T) {
	store := setupStore(t)
	ok := &fakeNotifier{}
	failing := &fakeNotifier{err: errors.New("webhook down")}
	rec := NewRecorder(store, ok, failing)

	n, err := rec.Record(context.Background(), "Alice added bill: Rent", models.NotificationBill)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if n.ID == "" || n.CreatedAt.IsZero() {
		t.Errorf("notification not populated: %+v", n)
	}
	rec.Wait()

	if len(ok.seen) != 1 || ok.seen[0] != "Alice added bill: Rent" {
		t.Errorf("notifier saw %v", ok.seen)
	}
	if len(failing.seen) != 1 {
		t.Errorf("failing notifier saw %v", failing.seen)
	}

	list, err := store.ListNotifications(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(list) != 1 || list[0].Type != models.NotificationBill {
		t.Errorf("stored notifications = %+v", list)
	}
}

func TestParseWebhookURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantID    string
		wantToken string
		wantErr   bool
	}{
		{"discord", "https://discord.com/api/webhooks/123/abc-DEF", "123", "abc-DEF", false},
		{"versioned", "https://discord.com/api/v10/webhooks/9/tok", "9", "tok", false},
		{"missing token", "https://discord.com/api/webhooks/123", "", "", true},
		{"not a webhook", "https://example.com/hooks", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, token, err := ParseWebhookURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if id != tt.wantID || token != tt.wantToken {
				t.Errorf("got (%q, %q), want (%q, %q)", id, token, tt.wantID, tt.wantToken)
			}
		})
	}
}

type fakeWebhook struct {
	id, token string
	params    *discordgo.WebhookParams
}

func (f *fakeWebhook) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.id, f.token, f.params = webhookID, token, data
	return nil, nil
}

func TestDiscordNotifier(t *testing.T) {
	hook := &fakeWebhook{}
	d := &DiscordNotifier{session: hook, id: "123", token: "tok"}

	if err := d.Notify(context.Background(), models.Notification{Message: "Bob settled bill: Rent"}); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if hook.id != "123" || hook.token != "tok" {
		t.Errorf("webhook = %s/%s", hook.id, hook.token)
	}
	if hook.params.Content != "Bob settled bill: Rent" || hook.params.Username != discordUsername {
		t.Errorf("params = %+v", hook.params)
	}
}

func TestNewDiscordNotifier(t *testing.T) {
	if _, err := NewDiscordNotifier("https://discord.com/api/webhooks/1/t"); err != nil {
		t.Fatalf("NewDiscordNotifier failed: %v", err)
	}
	if _, err := NewDiscordNotifier("not a url"); err == nil {
		t.Error("expected error for bad url")
	}
}
