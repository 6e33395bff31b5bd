package notes

import (
	"strings"
	"testing"
)

func TestFromHTML(t *testing.T) {
	g := NewGenerator()

	md, err := g.FromHTML(`<div><h1>Agenda</h1><p>First <strong>important</strong> point.</p></div>`)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if !strings.Contains(md, "Agenda") {
		t.Errorf("markdown %q missing heading text", md)
	}
	if !strings.Contains(md, "**important**") {
		t.Errorf("markdown %q missing bold emphasis", md)
	}
}

func TestFromHTMLList(t *testing.T) {
	g := NewGenerator()

	md, err := g.FromHTML(`<ul><li>alpha</li><li>beta</li></ul>`)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if !strings.Contains(md, "alpha") || !strings.Contains(md, "beta") {
		t.Errorf("markdown %q missing list items", md)
	}
}

func TestFromHTMLStripsScripts(t *testing.T) {
	g := NewGenerator()

	md, err := g.FromHTML(`<p>safe</p><script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if strings.Contains(md, "alert") {
		t.Errorf("markdown %q leaked script content", md)
	}
	if !strings.Contains(md, "safe") {
		t.Errorf("markdown %q lost the paragraph", md)
	}
}

func TestFromHTMLEmpty(t *testing.T) {
	g := NewGenerator()

	md, err := g.FromHTML("")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if md != "" {
		t.Errorf("markdown = %q, want empty", md)
	}
}
