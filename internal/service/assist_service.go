package service

import (
	"context"
	"fmt"
	"strings"

	"sclusiv/internal/pkg"
)

// FallbackReply is returned when the generator cannot produce a reply.
const FallbackReply = "Got it!"

// AssistService wraps the AI collaborator. It never fails: any
// generator error degrades to the caller's own text (captions) or a
// fixed reply.
type AssistService struct {
	gen TextGenerator
}

func NewAssistService(gen TextGenerator) *AssistService {
	return &AssistService{gen: gen}
}

func (s *AssistService) ImproveCaption(ctx context.Context, content string) string {
	if strings.TrimSpace(content) == "" {
		return content
	}
	prompt := fmt.Sprintf("Improve this social media caption to make it more engaging and add relevant hashtags: %q", content)
	out, err := s.gen.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			pkg.Warn.Printf("caption assist degraded: %v", err)
		}
		return content
	}
	return strings.TrimSpace(out)
}

func (s *AssistService) SuggestReply(ctx context.Context, lastMessage string) string {
	if strings.TrimSpace(lastMessage) == "" {
		return FallbackReply
	}
	prompt := fmt.Sprintf("Generate a short, friendly reply for this chat message: %q", lastMessage)
	out, err := s.gen.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			pkg.Warn.Printf("reply assist degraded: %v", err)
		}
		return FallbackReply
	}
	return strings.TrimSpace(out)
}
