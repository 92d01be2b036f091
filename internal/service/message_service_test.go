package service

import (
	"context"
	"errors"
	"testing"

	"sclusiv/internal/model"
)

func newTestMessageService(t *testing.T) (*MessageService, *FakeMessageRepo, *FakeUserRepo, *FakeCreditRepo) {
	t.Helper()
	users := NewFakeUserRepo()
	repo := NewFakeMessageRepo()
	entries := &FakeCreditRepo{}
	svc := NewMessageService(repo, users, NewCreditService(users, entries))
	return svc, repo, users, entries
}

func TestSendChargesSender(t *testing.T) {
	svc, repo, users, entries := newTestMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, users, model.User{Name: "alice", Email: "alice@example.com", Credits: 25})
	bob := seedUser(t, users, model.User{Name: "bob", Email: "bob@example.com", Credits: 25})

	msg, err := svc.Send(ctx, alice.ID, bob.ID, MessagePayload{Text: "hey"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.ID == 0 || msg.SenderID != alice.ID || msg.ReceiverID != bob.ID {
		t.Fatalf("msg = %+v", msg)
	}
	after, _ := users.FindByID(ctx, alice.ID)
	if after.Credits != 15 {
		t.Fatalf("sender credits = %d, want 15", after.Credits)
	}
	// the receiver pays nothing
	if b, _ := users.FindByID(ctx, bob.ID); b.Credits != 25 {
		t.Fatalf("receiver credits = %d, want 25", b.Credits)
	}
	if len(entries.entries) != 1 || entries.entries[0].Reason != "message" || entries.entries[0].Delta != -MessageCost {
		t.Fatalf("ledger = %+v", entries.entries)
	}
	if len(repo.messages) != 1 {
		t.Fatalf("stored messages = %d", len(repo.messages))
	}
}

func TestSendExhaustsBalance(t *testing.T) {
	svc, repo, users, _ := newTestMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, users, model.User{Name: "alice", Email: "alice@example.com", Credits: DefaultCredits})
	bob := seedUser(t, users, model.User{Name: "bob", Email: "bob@example.com"})

	sends := int(DefaultCredits / MessageCost)
	for i := 0; i < sends; i++ {
		if _, err := svc.Send(ctx, alice.ID, bob.ID, MessagePayload{Text: "x"}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	after, _ := users.FindByID(ctx, alice.ID)
	if after.Credits != 0 {
		t.Fatalf("credits = %d, want 0", after.Credits)
	}

	// the next send is rejected and nothing is written
	if _, err := svc.Send(ctx, alice.ID, bob.ID, MessagePayload{Text: "x"}); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("err = %v, want ErrInsufficientCredits", err)
	}
	if len(repo.messages) != sends {
		t.Fatalf("stored messages = %d, want %d", len(repo.messages), sends)
	}
}

// A failed append must not leave the sender charged for a message
// that was never stored.
func TestSendRefundsOnAppendFailure(t *testing.T) {
	svc, repo, users, entries := newTestMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, users, model.User{Name: "alice", Email: "alice@example.com", Credits: 100})
	bob := seedUser(t, users, model.User{Name: "bob", Email: "bob@example.com"})

	repo.appendErr = errors.New("storage down")
	if _, err := svc.Send(ctx, alice.ID, bob.ID, MessagePayload{Text: "hi"}); err == nil {
		t.Fatal("send succeeded despite append failure")
	}
	after, _ := users.FindByID(ctx, alice.ID)
	if after.Credits != 100 {
		t.Fatalf("credits = %d, want 100", after.Credits)
	}
	// the ledger records both sides of the aborted send
	if len(entries.entries) != 2 || entries.entries[1].Reason != "message_refund" || entries.entries[1].Delta != MessageCost {
		t.Fatalf("ledger = %+v", entries.entries)
	}

	repo.appendErr = nil
	if _, err := svc.Send(ctx, alice.ID, bob.ID, MessagePayload{Text: "hi"}); err != nil {
		t.Fatalf("send after recovery: %v", err)
	}
}

func TestSendAdminIsFree(t *testing.T) {
	svc, _, users, entries := newTestMessageService(t)
	ctx := context.Background()
	admin := seedUser(t, users, model.User{Name: "Administrator", Email: "admin@sclusiv.app", Role: model.RoleAdmin, Credits: 5})
	bob := seedUser(t, users, model.User{Name: "bob", Email: "bob@example.com"})

	// 5 credits would not cover a paid send
	if _, err := svc.Send(ctx, admin.ID, bob.ID, MessagePayload{Text: "notice"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	after, _ := users.FindByID(ctx, admin.ID)
	if after.Credits != 5 {
		t.Fatalf("admin credits = %d, want 5", after.Credits)
	}
	if len(entries.entries) != 0 {
		t.Fatalf("admin send wrote ledger entries: %+v", entries.entries)
	}
}

func TestSendValidation(t *testing.T) {
	svc, _, users, _ := newTestMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, users, model.User{Name: "alice", Email: "alice@example.com", Credits: 100})

	if _, err := svc.Send(ctx, alice.ID, alice.ID, MessagePayload{Text: "hi"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self send: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Send(ctx, alice.ID, 2, MessagePayload{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty payload: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Send(ctx, alice.ID, 999, MessagePayload{Text: "hi"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown receiver: err = %v, want ErrNotFound", err)
	}

	// image-only and audio-only payloads are valid
	bob := seedUser(t, users, model.User{Name: "bob", Email: "bob@example.com"})
	if _, err := svc.Send(ctx, alice.ID, bob.ID, MessagePayload{ImageURL: "https://cdn/img.png"}); err != nil {
		t.Fatalf("image send: %v", err)
	}
	if _, err := svc.Send(ctx, alice.ID, bob.ID, MessagePayload{AudioURL: "https://cdn/voice.webm"}); err != nil {
		t.Fatalf("audio send: %v", err)
	}
}

func TestConversationAndPeers(t *testing.T) {
	svc, _, users, _ := newTestMessageService(t)
	ctx := context.Background()
	alice := seedUser(t, users, model.User{Name: "alice", Email: "alice@example.com", Credits: 100})
	bob := seedUser(t, users, model.User{Name: "bob", Email: "bob@example.com", Credits: 100})
	carol := seedUser(t, users, model.User{Name: "carol", Email: "carol@example.com", Credits: 100})

	_, _ = svc.Send(ctx, alice.ID, bob.ID, MessagePayload{Text: "hi bob"})
	_, _ = svc.Send(ctx, bob.ID, alice.ID, MessagePayload{Text: "hi alice"})
	_, _ = svc.Send(ctx, carol.ID, alice.ID, MessagePayload{Text: "hi from carol"})

	msgs, _, err := svc.Conversation(ctx, alice.ID, bob.ID, 0, 50)
	if err != nil {
		t.Fatalf("conversation: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("conversation messages = %d, want 2", len(msgs))
	}

	peers, err := svc.Peers(ctx, alice.ID)
	if err != nil {
		t.Fatalf("peers: %v", err)
	}
	if len(peers) != 2 {
		t.Fatalf("peers = %d, want 2", len(peers))
	}
}
