package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "api,config,tui" {
		t.Fatalf("unexpected topics: %s", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" API ")
	if !ok || !strings.Contains(body, "GET /itens") {
		t.Fatalf("expected api topic; ok=%v", ok)
	}
	for _, bad := range []string{"", "nope", "../docs", "content/api"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
