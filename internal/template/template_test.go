package template

import (
	"testing"

	"github.com/arda-labs/notify-core/internal/domain"
)

func TestFill(t *testing.T) {
	profile := domain.UserProfile{
		Account:   "alice",
		LastName:  "Tran",
		FirstName: "An",
		City:      "Tokyo",
		Country:   "Japan",
	}

	title, content := Fill(
		"Hi {{user_account}}, code {{verify_code}}",
		"Welcome to {{user_city}}",
		profile,
		map[string]string{"{{verify_code}}": "7788"},
	)

	if title != "Hi alice, code 7788" {
		t.Errorf("title = %q, want %q", title, "Hi alice, code 7788")
	}
	if content != "Welcome to Tokyo" {
		t.Errorf("content = %q, want %q", content, "Welcome to Tokyo")
	}
}

func TestFillMissingKeysAreNoops(t *testing.T) {
	profile := domain.UserProfile{Account: "bob"}
	title, content := Fill("Hello {{user_account}}", "{{unknown_key}}", profile, nil)
	if title != "Hello bob" {
		t.Errorf("title = %q, want %q", title, "Hello bob")
	}
	if content != "{{unknown_key}}" {
		t.Errorf("content = %q, want unchanged %q", content, "{{unknown_key}}")
	}
}

func TestFillIsPure(t *testing.T) {
	profile := domain.UserProfile{Account: "carol", City: "Osaka"}
	keyMap := map[string]string{"{{ref}}": "X1"}

	t1, c1 := Fill("{{user_account}}/{{ref}}", "{{user_city}}", profile, keyMap)
	t2, c2 := Fill("{{user_account}}/{{ref}}", "{{user_city}}", profile, keyMap)

	if t1 != t2 || c1 != c2 {
		t.Errorf("Fill is not pure: (%q,%q) != (%q,%q)", t1, c1, t2, c2)
	}
}

func TestFillKeyMapAppliesToTitleAndContent(t *testing.T) {
	profile := domain.UserProfile{}
	title, content := Fill("A{{x}}", "B{{x}}", profile, map[string]string{"{{x}}": "Z"})
	if title != "AZ" || content != "BZ" {
		t.Errorf("got (%q,%q), want (%q,%q)", title, content, "AZ", "BZ")
	}
}
