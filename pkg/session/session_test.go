package session

import (
	"context"
	"testing"
)

func TestSessionContextRoundTrip(t *testing.T) {
	sess := &Session{ID: "sid", User: &User{ID: 7, Username: "alice"}}

	ctx := ContextWithSession(context.Background(), sess)
	got, err := SessionFromContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}
	if got != sess {
		t.Errorf("wrong session from context: %+v", got)
	}
}

func TestSessionFromEmptyContext(t *testing.T) {
	_, err := SessionFromContext(context.Background())
	if err == nil {
		t.Error("expected error for a context without a session")
	}
}
