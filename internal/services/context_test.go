package services_test

import (
	"context"
	"testing"

	"movierec/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithQuery(ctx, "Avatar")
	ctx = services.WithStage(ctx, "vectorize")
	ctx = services.WithRequestID(ctx, "req-123")

	if title, ok := services.QueryFromContext(ctx); !ok || title != "Avatar" {
		t.Fatalf("unexpected query: %v %v", title, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "vectorize" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	ctx = services.WithQuery(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	if _, ok := services.QueryFromContext(ctx); ok {
		t.Fatal("expected no query value")
	}
}
