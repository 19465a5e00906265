package blk

import (
	"fmt"
	"strings"
)

// DefaultFileName is the base name used when the user supplies none
const DefaultFileName = "A_BLKSAVE"

// FileExtension is appended to every generated file name
const FileExtension = ".blk"

// Block names emitted by BuildTemplate and MergeUserFragment
const (
	DistancesBlock = "crosshair_distances"
	RangesBlock    = "crosshair_hor_ranges"
	MatchExpBlock  = "matchExpClass"
	DrawLinesBlock = "drawLines"
)

// Options controls the toggleable parts of the generated template
type Options struct {
	DrawCentralLineVert     bool
	DrawCentralLineHorz     bool
	IncludeHorizontalRanges bool
}

// DefaultOptions returns the options with every toggle enabled
func DefaultOptions() Options {
	return Options{
		DrawCentralLineVert:     true,
		DrawCentralLineHorz:     true,
		IncludeHorizontalRanges: true,
	}
}

// prologueHead and prologueTail surround the two central-line attributes.
var prologueHead = []string{
	"crosshairHorVertSize:p2=3, 2",
	"rangefinderProgressBarColor1:c=0, 255, 0, 64",
	"rangefinderProgressBarColor2:c=255, 255, 255, 64",
	"rangefinderTextScale:r=0.7",
	"rangefinderUseThousandth:b=no",
	"rangefinderVerticalOffset:r=0.1",
	"rangefinderHorizontalOffset:r=5",
	"detectAllyTextScale:r=0.7",
	"detectAllyOffset:p2=4, 0.05",
	"fontSizeMult:r=1",
	"lineSizeMult:r=1",
}

var prologueTail = []string{
	"drawSightMask:b=yes",
	"useSmoothEdge:b=yes",
	"crosshairColor:c=0, 0, 0, 0",
	"crosshairLightColor:c=0, 0, 0, 0",
	"crosshairDistHorSizeMain:p2=0.03, 0.02",
	"crosshairDistHorSizeAdditional:p2=0.005, 0.003",
	"distanceCorrectionPos:p2=-0.26, -0.05",
	"drawDistanceCorrection:b=yes",
}

var distanceLines = []string{
	"distance:p3=200, 0, 0",
	"distance:p3=400, 4, 0",
	"distance:p3=600, 0, 0",
	"distance:p3=800, 8, 0",
	"distance:p3=1000, 0, 0",
	"distance:p3=1200, 12, 0",
	"distance:p3=1400, 0, 0",
	"distance:p3=1600, 16, 0",
	"distance:p3=1800, 0, 0",
	"distance:p3=2000, 20, 0",
	"distance:p3=2200, 0, 0",
	"distance:p3=2400, 24, 0",
	"distance:p3=2600, 0, 0",
	"distance:p3=2800, 28, 0",
	"distance:p3=3000, 0, 0",
	"distance:p3=3200, 32, 0",
	"distance:p3=3400, 0, 0",
	"distance:p3=3600, 36, 0",
	"distance:p3=3800, 0, 0",
	"distance:p3=4000, 40, 0",
	"distance:p3=4200, 0, 0",
	"distance:p3=4400, 44, 0",
	"distance:p3=4600, 0, 0",
	"distance:p3=4800, 48, 0",
	"distance:p3=5000, 0, 0",
	"distance:p3=5200, 52, 0",
	"distance:p3=5400, 0, 0",
	"distance:p3=5600, 56, 0",
	"distance:p3=5800, 0, 0",
	"distance:p3=6000, 60, 0",
}

var rangeLines = []string{
	"range:p2=-32, 32",
	"range:p2=-28, 0",
	"range:p2=-24, 24",
	"range:p2=-20, 0",
	"range:p2=-16, 16",
	"range:p2=-12, 0",
	"range:p2=-8, 8",
	"range:p2=-4, 0",
	"range:p2=4, 0",
	"range:p2=8, 8",
	"range:p2=12, 0",
	"range:p2=16, 16",
	"range:p2=20, 0",
	"range:p2=24, 24",
	"range:p2=28, 0",
	"range:p2=32, 32",
}

var matchExpLines = []string{
	"exp_tank:b = yes",
	"exp_heavy_tank:b = yes",
	"exp_tank_destroyer:b = yes",
	"exp_SPAA:b = yes",
}

// BuildTemplate renders the static part of a BLK document.
// The result has no trailing newline.
func BuildTemplate(opts Options) string {
	var b builder

	b.lines(prologueHead...)
	b.linef("drawCentralLineVert:b=%s", FormatBool(opts.DrawCentralLineVert))
	b.linef("drawCentralLineHorz:b=%s", FormatBool(opts.DrawCentralLineHorz))
	b.lines(prologueTail...)
	b.blank()

	b.block(DistancesBlock, distanceLines)
	b.blank()

	// The wrapper is always emitted, only its body is optional.
	if opts.IncludeHorizontalRanges {
		b.block(RangesBlock, rangeLines)
	} else {
		b.block(RangesBlock, nil)
	}
	b.blank()

	b.block(MatchExpBlock, matchExpLines)

	return b.String()
}

// FormatBool renders a boolean as a BLK yes/no token
func FormatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// builder accumulates output lines in order
type builder struct {
	out []string
}

func (b *builder) lines(lines ...string) {
	b.out = append(b.out, lines...)
}

func (b *builder) linef(format string, args ...interface{}) {
	b.out = append(b.out, fmt.Sprintf(format, args...))
}

func (b *builder) blank() {
	b.out = append(b.out, "")
}

// block writes name{ ... } with the body indented by two spaces
func (b *builder) block(name string, body []string) {
	b.out = append(b.out, name+"{")
	for _, line := range body {
		b.out = append(b.out, "  "+line)
	}
	b.out = append(b.out, "}")
}

func (b *builder) String() string {
	return strings.Join(b.out, "\n")
}
