package openai

import (
	"testing"

	"github.com/quantive/confluence/internal/llm"
)

func TestProvider_ImplementsInterface(t *testing.T) {
	var _ llm.Provider = (*Provider)(nil)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNew_DefaultModel(t *testing.T) {
	p, err := New("sk-test", "")
	if err != nil {
		t.Fatal(err)
	}
	if p.model != defaultModel {
		t.Errorf("model = %q, want default", p.model)
	}
}
