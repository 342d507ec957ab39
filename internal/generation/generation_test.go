package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sidra/content-factory/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubGenerator lets tests control every call.
type stubGenerator struct {
	mu        sync.Mutex
	ideaCalls int
	ideas     []domain.IdeaDraft
	copy      string
	image     domain.ImageDescriptor
	err       error
}

func (s *stubGenerator) GenerateIdeas(context.Context, string) ([]domain.IdeaDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ideaCalls++
	return s.ideas, s.err
}

func (s *stubGenerator) ComposeCopy(context.Context, string, domain.Tone, domain.CultureContext) (string, error) {
	return s.copy, s.err
}

func (s *stubGenerator) GenerateImage(context.Context, string, string) (domain.ImageDescriptor, error) {
	return s.image, s.err
}

type countingRecorder struct {
	kinds []string
}

func (c *countingRecorder) RecordFallback(kind string) { c.kinds = append(c.kinds, kind) }

// ---------------------------------------------------------------------------
// Mock
// ---------------------------------------------------------------------------

func TestMock_GenerateIdeas_FiveIdeas(t *testing.T) {
	m := NewMock(nil)
	ideas, err := m.GenerateIdeas(context.Background(), "العودة إلى المدارس")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ideas) != 5 {
		t.Fatalf("got %d ideas, want 5", len(ideas))
	}
	for i, idea := range ideas {
		if idea.Text == "" || idea.Rationale == "" {
			t.Errorf("idea %d has empty text or rationale", i)
		}
	}

	// Returned slice must not alias the package table.
	ideas[0].Text = "changed"
	again, _ := m.GenerateIdeas(context.Background(), "x")
	if again[0].Text == "changed" {
		t.Error("mock ideas mutated through returned slice")
	}
}

func TestMock_ComposeCopy_MentionsSeedToneCulture(t *testing.T) {
	m := NewMock(nil)
	text, err := m.ComposeCopy(context.Background(), " فكرة ", domain.ToneFormal, domain.CultureBritish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`"فكرة"`, "رسمية", "بريطانية"} {
		if !strings.Contains(text, want) {
			t.Errorf("copy missing %q", want)
		}
	}
}

func TestMock_GenerateImage_SeededFromClock(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	m := NewMock(func() time.Time { return at })

	img, err := m.GenerateImage(context.Background(), "classroom", "photo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.URL != "https://picsum.photos/seed/1700000000000/800/600" {
		t.Errorf("URL = %q", img.URL)
	}
	if img.Source != domain.ImageSourceGenerated || img.Prompt != "classroom" {
		t.Errorf("unexpected descriptor: %+v", img)
	}
}

// ---------------------------------------------------------------------------
// Fallback
// ---------------------------------------------------------------------------

func TestFallback_PrimaryErrorUsesSecondary(t *testing.T) {
	primary := &stubGenerator{err: errors.New("boom")}
	rec := &countingRecorder{}
	f := WithFallback(primary, NewMock(nil), discardLogger(), rec)

	ideas, err := f.GenerateIdeas(context.Background(), "topic")
	if err != nil {
		t.Fatalf("fallback surfaced error: %v", err)
	}
	if len(ideas) != 5 {
		t.Errorf("got %d ideas, want mock's 5", len(ideas))
	}

	if _, err := f.ComposeCopy(context.Background(), "s", domain.ToneFriendly, domain.CultureSudanese); err != nil {
		t.Fatalf("ComposeCopy: %v", err)
	}
	if _, err := f.GenerateImage(context.Background(), "p", "s"); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}

	want := []string{KindIdeas, KindCopy, KindImage}
	if len(rec.kinds) != len(want) {
		t.Fatalf("recorded %v, want %v", rec.kinds, want)
	}
	for i := range want {
		if rec.kinds[i] != want[i] {
			t.Errorf("kind %d = %q, want %q", i, rec.kinds[i], want[i])
		}
	}
}

func TestFallback_EmptyIdeasUsesSecondary(t *testing.T) {
	primary := &stubGenerator{}
	f := WithFallback(primary, NewMock(nil), discardLogger(), nil)

	ideas, err := f.GenerateIdeas(context.Background(), "topic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ideas) != 5 {
		t.Errorf("got %d ideas, want 5", len(ideas))
	}
}

func TestFallback_PrimarySuccessPassesThrough(t *testing.T) {
	primary := &stubGenerator{ideas: []domain.IdeaDraft{{Text: "real", Rationale: "r"}}, copy: "real copy"}
	rec := &countingRecorder{}
	f := WithFallback(primary, NewMock(nil), discardLogger(), rec)

	ideas, _ := f.GenerateIdeas(context.Background(), "topic")
	if len(ideas) != 1 || ideas[0].Text != "real" {
		t.Errorf("unexpected ideas: %+v", ideas)
	}
	text, _ := f.ComposeCopy(context.Background(), "s", domain.ToneFriendly, domain.CultureSudanese)
	if text != "real copy" {
		t.Errorf("copy = %q", text)
	}
	if len(rec.kinds) != 0 {
		t.Errorf("unexpected fallbacks: %v", rec.kinds)
	}
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

func TestCached_IdeasMemoizedPerNormalizedTopic(t *testing.T) {
	inner := &stubGenerator{ideas: []domain.IdeaDraft{{Text: "a"}}}
	c := WithCache(inner, time.Minute, time.Minute)
	ctx := context.Background()

	for _, topic := range []string{"Back To School", "  back   to school ", "BACK TO SCHOOL"} {
		if _, err := c.GenerateIdeas(ctx, topic); err != nil {
			t.Fatalf("GenerateIdeas(%q): %v", topic, err)
		}
	}
	if inner.ideaCalls != 1 {
		t.Errorf("inner called %d times, want 1", inner.ideaCalls)
	}

	if _, err := c.GenerateIdeas(ctx, "other"); err != nil {
		t.Fatalf("GenerateIdeas: %v", err)
	}
	if inner.ideaCalls != 2 {
		t.Errorf("inner called %d times, want 2", inner.ideaCalls)
	}
}

func TestCached_ErrorsNotCached(t *testing.T) {
	inner := &stubGenerator{err: errors.New("down")}
	c := WithCache(inner, time.Minute, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.GenerateIdeas(context.Background(), "t"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.ideaCalls != 2 {
		t.Errorf("inner called %d times, want 2", inner.ideaCalls)
	}
}
