package session

import (
	"context"
	"fmt"
	"time"
)

type key int

const (
	SessionKey key = 1
)

// Session is the client-local login record. It is persisted between runs and
// only controls which commands the app offers; the server never sees it.
type Session struct {
	ID      string    `json:"session_id"`
	User    *User     `json:"user"`
	Created time.Time `json:"created"`
}

type User struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
}

func SessionFromContext(ctx context.Context) (*Session, error) {
	sess, ok := ctx.Value(SessionKey).(*Session)
	if !ok {
		return nil, fmt.Errorf("Session not found")
	}

	return sess, nil
}

func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}
