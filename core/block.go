package core

import (
	"strings"
	"unicode/utf8"
)

// Block is one unit of source text rendered with highlighting and controls.
type Block struct {
	Language string // Optional language label; empty means none
	Text     string // Source text, immutable for the lifetime of one instance
	Key      string // Identifies the block among its siblings across re-renders
}

// LineCount returns the number of '\n'-separated segments in text.
// An empty text is a single empty line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// Length returns the character count of text used for size decisions.
func Length(text string) int {
	return utf8.RuneCountInString(text)
}

// SegmentKind distinguishes prose from code in a document.
type SegmentKind int

const (
	ProseSegment SegmentKind = iota
	BlockSegment
)

// Segment is one top-level piece of a document: either prose or a code block.
type Segment struct {
	Kind  SegmentKind
	Prose string
	Block Block
}

// Blocks returns the code blocks of segments in order.
func Blocks(segments []Segment) []Block {
	var blocks []Block
	for _, segment := range segments {
		if segment.Kind == BlockSegment {
			blocks = append(blocks, segment.Block)
		}
	}
	return blocks
}
