package service

import (
	"context"

	"sclusiv/internal/model"
)

type MessageService struct {
	repo    MessageRepo
	users   UserRepo
	credits *CreditService
}

func NewMessageService(repo MessageRepo, users UserRepo, credits *CreditService) *MessageService {
	return &MessageService{repo: repo, users: users, credits: credits}
}

type MessagePayload struct {
	Text     string
	ImageURL string
	AudioURL string
}

func (p MessagePayload) empty() bool {
	return p.Text == "" && p.ImageURL == "" && p.AudioURL == ""
}

// Send charges the 10-credit fee before appending: if the sender
// cannot pay, nothing is written. The admin account sends for free.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID uint64, payload MessagePayload) (*model.Message, error) {
	if payload.empty() || senderID == receiverID {
		return nil, ErrInvalidInput
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		return nil, ErrNotFound
	}
	sender, err := s.users.FindByID(ctx, senderID)
	if err != nil {
		return nil, ErrNotFound
	}

	if !sender.IsAdmin() {
		if sender.Credits < MessageCost {
			return nil, ErrInsufficientCredits
		}
		if err := s.credits.Adjust(ctx, senderID, -MessageCost, "message"); err != nil {
			return nil, err
		}
	}

	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       payload.Text,
		ImageURL:   payload.ImageURL,
		AudioURL:   payload.AudioURL,
	}
	if err := s.repo.Append(ctx, msg); err != nil {
		// nothing was stored, so nothing may stay charged
		if !sender.IsAdmin() {
			_ = s.credits.Adjust(ctx, senderID, MessageCost, "message_refund")
		}
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) Conversation(ctx context.Context, userID, peerID uint64, cursor uint64, limit int) ([]model.Message, uint64, error) {
	if userID == 0 || peerID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.repo.ListConversation(ctx, userID, peerID, cursor, limit)
}

// Peers resolves everyone the user has a conversation with.
func (s *MessageService) Peers(ctx context.Context, userID uint64) ([]model.User, error) {
	ids, err := s.repo.ListPeers(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}
