package local

import (
	"context"
	"testing"
)

func TestProvider_Deterministic(t *testing.T) {
	p := New()
	a, err := p.Embed(context.Background(), "fetch user profile")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	b, err := p.Embed(context.Background(), "fetch user profile")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("embedding not deterministic at index %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestProvider_EmptyText(t *testing.T) {
	p := New()
	v, err := p.Embed(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	for _, x := range v {
		if x != 0 {
			t.Fatalf("blank text should embed to the zero vector, got %v", v)
		}
	}
}

func TestProvider_SimilarTextsCloserThanDissimilar(t *testing.T) {
	p := New()
	ctx := context.Background()

	userQuery, _ := p.Embed(ctx, "user query text")
	userInput, _ := p.Embed(ctx, "user input text")
	firecracker, _ := p.Embed(ctx, "firecracker microvm sandbox guest agent")

	dot := func(a, b []float32) float64 {
		var s float64
		for i := range a {
			s += float64(a[i]) * float64(b[i])
		}
		return s
	}

	sameFamily := dot(userQuery, userInput)
	unrelated := dot(userQuery, firecracker)

	if sameFamily <= unrelated {
		t.Errorf("expected shared-word phrases to score higher overlap (%v) than unrelated text (%v)", sameFamily, unrelated)
	}
}
