package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	userID := uuid.New()

	token, exp, err := m.Issue(userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", exp)
	}

	got, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != userID {
		t.Errorf("Parse = %v, want %v", got, userID)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, _, err := NewManager("secret-a", time.Hour).Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Error("Parse accepted a token signed with a different secret")
	}
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, _, err := m.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := m.Parse(token); err == nil {
		t.Error("Parse accepted an expired token")
	}
}

func TestParse_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Parse(tok); err == nil {
			t.Errorf("Parse(%q) accepted garbage", tok)
		}
	}
}
