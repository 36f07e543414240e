package richtext

import (
	"testing"

	"github.com/thoreson/quire/model"
)

func paragraphs(t *testing.T, input string) []*model.Paragraph {
	t.Helper()
	elements, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := make([]*model.Paragraph, 0, len(elements))
	for _, e := range elements {
		p, ok := e.(*model.Paragraph)
		if !ok {
			t.Fatalf("unexpected element type %v", e.Type())
		}
		out = append(out, p)
	}
	return out
}

func TestParseParagraphs(t *testing.T) {
	paras := paragraphs(t, "<p>first</p><p>second</p>")
	if len(paras) != 2 {
		t.Fatalf("paragraph count = %d, want 2", len(paras))
	}
	if paras[0].GetText() != "first" || paras[1].GetText() != "second" {
		t.Errorf("texts = %q, %q", paras[0].GetText(), paras[1].GetText())
	}
}

func TestParseFormatting(t *testing.T) {
	paras := paragraphs(t, "<p>plain <b>bold</b> and <i>italic <u>both</u></i></p>")
	if len(paras) != 1 {
		t.Fatalf("paragraph count = %d, want 1", len(paras))
	}
	runs := paras[0].Content()
	if len(runs) != 5 {
		t.Fatalf("run count = %d, want 5", len(runs))
	}

	tests := []struct {
		text      string
		bold      bool
		italic    bool
		underline bool
	}{
		{"plain ", false, false, false},
		{"bold", true, false, false},
		{" and ", false, false, false},
		{"italic ", false, true, false},
		{"both", false, true, true},
	}
	for i, tt := range tests {
		run := runs[i].(*model.TextRun)
		if run.Text != tt.text {
			t.Errorf("run %d text = %q, want %q", i, run.Text, tt.text)
		}
		if run.Props.Bold != tt.bold || run.Props.Italic != tt.italic || run.Props.Underline != tt.underline {
			t.Errorf("run %d props = %+v", i, run.Props)
		}
	}
}

func TestParseVerticalAlignment(t *testing.T) {
	paras := paragraphs(t, "<p>x<sup>2</sup> and H<sub>2</sub>O</p>")
	runs := paras[0].Content()

	var sup, sub bool
	for _, r := range runs {
		switch r.(*model.TextRun).Props.VertAlign {
		case model.VertAlignSuperscript:
			sup = true
		case model.VertAlignSubscript:
			sub = true
		}
	}
	if !sup || !sub {
		t.Errorf("superscript/subscript runs missing: %v/%v", sup, sub)
	}
}

func TestParseLineBreakSplitsParagraph(t *testing.T) {
	paras := paragraphs(t, "<p>above<br>below</p>")
	if len(paras) != 2 {
		t.Fatalf("paragraph count = %d, want 2", len(paras))
	}
	if paras[0].GetText() != "above" || paras[1].GetText() != "below" {
		t.Errorf("texts = %q, %q", paras[0].GetText(), paras[1].GetText())
	}
}

func TestParseLooseText(t *testing.T) {
	paras := paragraphs(t, "leading text<p>body</p>")
	if len(paras) != 2 {
		t.Fatalf("paragraph count = %d, want 2", len(paras))
	}
	if paras[0].GetText() != "leading text" {
		t.Errorf("loose text = %q", paras[0].GetText())
	}
}

func TestParseSkipsNonContent(t *testing.T) {
	paras := paragraphs(t, "<style>p{color:red}</style><p>visible</p><script>alert(1)</script>")
	if len(paras) != 1 || paras[0].GetText() != "visible" {
		t.Fatalf("script/style content leaked: %+v", paras)
	}
}

func TestParseCollapsesWhitespace(t *testing.T) {
	paras := paragraphs(t, "<p>a\n\t  b   c</p>")
	if got := paras[0].GetText(); got != "a b c" {
		t.Errorf("collapsed text = %q, want %q", got, "a b c")
	}
}

func TestParseUnknownTagsContributeText(t *testing.T) {
	paras := paragraphs(t, "<p><span>kept</span></p>")
	if len(paras) != 1 || paras[0].GetText() != "kept" {
		t.Fatalf("span text lost: %+v", paras)
	}
}
