package blk

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestMergeUserFragment(t *testing.T) {
	template := BuildTemplate(DefaultOptions())

	tests := []struct {
		name       string
		fragment   string
		wantSuffix string
	}{
		{
			name:       "pre-wrapped block is appended verbatim",
			fragment:   "drawLines{\nfoo\n}",
			wantSuffix: "\n\ndrawLines{\nfoo\n}",
		},
		{
			name:       "pre-wrapped block with surrounding whitespace",
			fragment:   "\n\n  drawLines{\n  line{}\n}  \n",
			wantSuffix: "\n\ndrawLines{\n  line{}\n}",
		},
		{
			name:       "bare directives are wrapped",
			fragment:   "foo",
			wantSuffix: "\n\ndrawLines{\nfoo\n}",
		},
		{
			name:       "bare directives are trimmed before wrapping",
			fragment:   "  line{\n  thousandth:b=yes\n}\n\n",
			wantSuffix: "\n\ndrawLines{\nline{\n  thousandth:b=yes\n}\n}",
		},
		{
			name:       "empty fragment gets an empty wrapper",
			fragment:   "",
			wantSuffix: "\n\ndrawLines{\n\n}",
		},
		{
			name:       "whitespace-only fragment gets an empty wrapper",
			fragment:   " \t\n ",
			wantSuffix: "\n\ndrawLines{\n\n}",
		},
		{
			name:       "opening token without closing brace is wrapped",
			fragment:   "drawLines{ foo",
			wantSuffix: "\n\ndrawLines{\ndrawLines{ foo\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MergeUserFragment(template, tt.fragment)

			if !strings.HasPrefix(result, template) {
				t.Errorf("expected result to start with the template")
			}
			if got := strings.TrimPrefix(result, template); got != tt.wantSuffix {
				t.Errorf("appended block = %q, expected %q", got, tt.wantSuffix)
			}
		})
	}
}

func TestMergeUserFragment_SingleDrawLinesBlock(t *testing.T) {
	template := BuildTemplate(DefaultOptions())

	for _, fragment := range []string{"drawLines{\nfoo\n}", "foo", ""} {
		result := MergeUserFragment(template, fragment)
		if n := strings.Count(result, "drawLines{"); n != 1 {
			t.Errorf("fragment %q: expected exactly one drawLines{ token, got %d", fragment, n)
		}
	}
}

func TestIsWrappedFragment(t *testing.T) {
	tests := []struct {
		fragment string
		expected bool
	}{
		{"drawLines{}", true},
		{"drawLines{\nfoo\n}", true},
		{"  drawLines{\nfoo\n}\n", true},
		{"drawLines {\nfoo\n}", false},
		{"foo\n}", false},
		{"drawLines{", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsWrappedFragment(tt.fragment); got != tt.expected {
			t.Errorf("IsWrappedFragment(%q) = %v, expected %v", tt.fragment, got, tt.expected)
		}
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", "\n"},
		{"no trailing newline", "a", "a\n"},
		{"multiple trailing newlines", "a\n\n\n", "a\n"},
		{"leading whitespace", "\n\t a\nb", "a\nb\n"},
		{"inner blank lines kept", "a\n\nb\n", "a\n\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Finalize(tt.input); got != tt.expected {
				t.Errorf("Finalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	content := Assemble(DefaultOptions(), "myline")

	if !strings.HasSuffix(content, "drawLines{\nmyline\n}\n") {
		t.Errorf("expected content to end with the wrapped fragment, got %q", content[len(content)-40:])
	}
	for _, line := range rangeLines {
		if !strings.Contains(content, "  "+line+"\n") {
			t.Errorf("expected range line %q in content", line)
		}
	}
	if !strings.Contains(content, "drawCentralLineVert:b=yes") || !strings.Contains(content, "drawCentralLineHorz:b=yes") {
		t.Error("expected both central line flags to be yes")
	}
	if strings.HasSuffix(content, "\n\n") {
		t.Error("expected exactly one trailing newline")
	}
}

func TestAssemble_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("finalize is idempotent", prop.ForAll(
		func(s string) bool {
			once := Finalize(s)
			return Finalize(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("finalized documents end with exactly one newline", prop.ForAll(
		func(s string) bool {
			out := Finalize(s)
			return strings.HasSuffix(out, "\n") && !strings.HasSuffix(out, "\n\n")
		},
		gen.AlphaString(),
	))

	properties.Property("central line flags are rendered as yes/no", prop.ForAll(
		func(vert, horz, ranges bool) bool {
			result := BuildTemplate(Options{
				DrawCentralLineVert:     vert,
				DrawCentralLineHorz:     horz,
				IncludeHorizontalRanges: ranges,
			})
			return strings.Contains(result, "drawCentralLineVert:b="+FormatBool(vert)) &&
				strings.Contains(result, "drawCentralLineHorz:b="+FormatBool(horz)) &&
				strings.Count(result, "distance:") == 30 &&
				strings.Count(result, "range:") == map[bool]int{true: 16, false: 0}[ranges]
		},
		gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("bare fragments are wrapped in exactly one drawLines block", prop.ForAll(
		func(fragment string) bool {
			template := BuildTemplate(DefaultOptions())
			result := MergeUserFragment(template, fragment)
			return strings.HasPrefix(result, template) &&
				strings.Count(result, "drawLines{") == 1 &&
				strings.HasSuffix(result, "drawLines{\n"+fragment+"\n}")
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
