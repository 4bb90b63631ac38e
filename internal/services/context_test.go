package services_test

import (
	"context"
	"testing"

	"emustation/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "abc")
	ctx = services.WithAccount(ctx, "12345")
	ctx = services.WithStage(ctx, "merge")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "abc" {
		t.Fatalf("session id = %q, ok=%v", id, ok)
	}
	if acct, ok := services.AccountFromContext(ctx); !ok || acct != "12345" {
		t.Fatalf("account = %q, ok=%v", acct, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "merge" {
		t.Fatalf("stage = %q, ok=%v", stage, ok)
	}
}

func TestContextHelpersIgnoreEmpty(t *testing.T) {
	ctx := services.WithAccount(context.Background(), "")
	if _, ok := services.AccountFromContext(ctx); ok {
		t.Fatal("expected empty account to be ignored")
	}
	if _, ok := services.SessionIDFromContext(context.Background()); ok {
		t.Fatal("expected no session id on bare context")
	}
}
