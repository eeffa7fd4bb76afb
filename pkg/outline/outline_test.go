package outline

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/mindmup/pkg/idea"
)

const sample = `
title = "Project"

[[idea]]
title = "base1"
key = "b1"
color = "#ffcc00"
collapsed = true
measurements = { B = 1, A = "2" }
table = { owner = "platform" }

  [[idea.idea]]
  title = "detail"

[[idea]]
title = "idea2"
note = "<p>see docs</p>"

[[idea]]
key = "b1"
measurements = { C = 2.5 }

  [[idea.idea]]
  title = "more"

[[link]]
from = "b1"
to = "idea2"

[[link]]
from = "idea2"
to = "Project"
color = "#0000FF"
line_style = "solid"
`

func titles(tr *idea.Tree) []string {
	var out []string
	for s := range tr.Walk() {
		out = append(out, strings.Repeat(".", s.Depth)+s.Node.Title)
	}
	return out
}

func TestBuild(t *testing.T) {
	o, err := Parse(sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr, err := o.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{"Project", ".base1", "..detail", "..more", ".idea2"}
	if got := titles(tr); !slices.Equal(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}

	base := tr.Root.Children()[0]
	if !base.IsCollapsed() || base.Attr.Style.Background != "#ffcc00" {
		t.Errorf("base1 attrs = %+v %+v", base.Attr, base.Attr.Style)
	}
	if got := base.Attr.Measurements.Names(); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("measurement names = %v, want [A B C]", got)
	}
	if v, _ := base.Measure("C"); v != "2.5" {
		t.Errorf("C = %q, want 2.5", v)
	}
	if a := base.Attr.Attachment; a == nil || !strings.Contains(a.Content, "<td><b>owner</b> </td><td>platform</td>") {
		t.Errorf("attachment = %+v, want rendered table", a)
	}

	idea2 := tr.Root.Children()[1]
	if idea2.Attr.Attachment.Content != "<p>see docs</p>" {
		t.Errorf("note = %q", idea2.Attr.Attachment.Content)
	}

	links := tr.Links.All()
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if links[0].From != base || links[0].To != idea2 || links[0].Style != idea.DefaultLinkStyle() {
		t.Errorf("first link = %v -> %v %+v", links[0].From, links[0].To, links[0].Style)
	}
	if links[1].To != tr.Root || links[1].Style != (idea.LinkStyle{Color: "#0000FF", LineStyle: "solid"}) {
		t.Errorf("second link = %v -> %v %+v", links[1].From, links[1].To, links[1].Style)
	}

	shared, _ := tr.Shared(tr.Root)
	if !slices.Equal(shared.Keys(), []string{"b1", "idea2"}) {
		t.Errorf("root keys = %v", shared.Keys())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		outline string
		want    error
	}{
		{
			name:    "no title",
			outline: `[[idea]]` + "\n" + `title = "a"`,
			want:    ErrMissingTitle,
		},
		{
			name:    "idea without title",
			outline: "title = \"r\"\n[[idea]]\ncolor = \"#fff\"",
			want:    ErrMissingTitle,
		},
		{
			name:    "unknown link key",
			outline: "title = \"r\"\n[[idea]]\ntitle = \"a\"\n[[link]]\nfrom = \"a\"\nto = \"zzz\"",
			want:    ErrUnknownKey,
		},
		{
			name: "ambiguous link key",
			outline: "title = \"r\"\n[[idea]]\ntitle = \"a\"\n  [[idea.idea]]\n  title = \"x\"\n" +
				"[[idea]]\ntitle = \"b\"\n  [[idea.idea]]\n  title = \"x\"\n[[link]]\nfrom = \"a\"\nto = \"x\"",
			want: ErrAmbiguousKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := Parse(tt.outline)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := o.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Build error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildRejectsBadStyle(t *testing.T) {
	o, _ := Parse("title = \"r\"\n[[idea]]\ntitle = \"a\"\ncolor = \"red\"")
	if _, err := o.Build(); err == nil {
		t.Error("Build accepted color \"red\"")
	}
	o, _ = Parse("title = \"r\"\n[[idea]]\ntitle = \"a\"\n[[link]]\nfrom = \"a\"\nto = \"r\"\nline_style = \"wavy\"")
	if _, err := o.Build(); err == nil {
		t.Error("Build accepted line style \"wavy\"")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse("title = \"r\"\n[[idea]]\ntitel = \"typo\"")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("Parse error = %v, want ErrUnknownField", err)
	}
}

func TestFromTreeRoundTrip(t *testing.T) {
	tr := idea.NewTree("Project")
	a, b := idea.NewNode("same"), idea.NewNode("same")
	c := idea.NewNode("solo")
	tr.Append(tr.Root, a)
	tr.Append(tr.Root, b)
	tr.Append(a, c)
	c.AddMeasure("cost", 3)
	b.SetColor("#00ff00")
	tr.Links.Add(c, b, idea.LinkStyle{})
	tr.Links.Add(b, tr.Root, idea.LinkStyle{LineStyle: "solid"})

	var sb strings.Builder
	if err := Write(FromTree(tr), &sb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	o, err := Read(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Read: %v\n%s", err, sb.String())
	}
	back, err := o.Build()
	if err != nil {
		t.Fatalf("Build: %v\n%s", err, sb.String())
	}

	if got, want := titles(back), titles(tr); !slices.Equal(got, want) {
		t.Errorf("titles = %v, want %v", got, want)
	}
	if v, _ := back.Root.Children()[0].Children()[0].Measure("cost"); v != "3" {
		t.Errorf("cost = %q, want 3", v)
	}
	links := back.Links.All()
	if len(links) != 2 || links[0].From.Title != "solo" || links[1].To != back.Root {
		t.Errorf("links = %+v", links)
	}
	if links[0].To != back.Root.Children()[1] {
		t.Error("link resolved to the wrong idea titled same")
	}
}
