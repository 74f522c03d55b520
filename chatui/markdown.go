// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share — actual parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	})
	return markdownParserInstance
}

// RenderMarkdown parses markdown text and renders it as styled
// terminal output at the given width. Soft line breaks within
// paragraphs become spaces so hard-wrapped source reflows at any
// width; code blocks, lists, and quotes preserve their structure.
func RenderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	source := []byte(input)
	reader := text.NewReader(source)
	document := getMarkdownParser().Parser().Parse(reader)

	// Force ANSI256: this output is always for terminal display, so
	// bypass auto-detection which would produce uncolored output in
	// test environments with no TTY. SetColorProfile is required
	// because the renderer otherwise re-detects from the environment.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	renderer.flushInline("")

	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks a goldmark AST and produces styled terminal
// text. It uses a direct ast.Walk rather than goldmark's renderer
// interface because terminal rendering needs accumulate-then-wrap
// semantics: paragraph inline content collects in a buffer and gets
// word-wrapped as a unit when the paragraph closes.
type markdownRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder

	// Inline accumulator: collects styled fragments within a
	// paragraph or heading, flushed with word-wrap when the
	// containing block closes.
	inline strings.Builder

	// Prefix for nested block containers (blockquotes, list bodies).
	prefix string

	// Pending bullet: replaces the prefix tail for the very next
	// emitted line, then clears. bulletIndents tracks the hanging
	// indent each consumed bullet added to the prefix so list item
	// exit can unwind it.
	pendingBullet string
	bulletIndents []int

	// Inline style counters. Counters rather than booleans so nested
	// emphasis unwinds correctly.
	boldCount   int
	italicCount int
	strikeCount int

	listStack []listState

	lipRenderer *lipgloss.Renderer
}

type listState struct {
	ordered bool
	counter int
}

func (renderer *markdownRenderer) style() lipgloss.Style {
	style := renderer.lipRenderer.NewStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	if renderer.strikeCount > 0 {
		style = style.Strikethrough(true)
	}
	return style
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Heading:
		if entering {
			renderer.flushInline("")
		} else {
			heading := renderer.lipRenderer.NewStyle().
				Foreground(renderer.theme.HeaderForeground).
				Bold(true).
				Render(renderer.inline.String())
			renderer.inline.Reset()
			renderer.writeLine(heading)
			renderer.writeBlank()
		}

	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			renderer.flushInline("")
			if _, isTextBlock := node.(*ast.TextBlock); !isTextBlock {
				renderer.writeBlank()
			}
		}

	case *ast.Text:
		if entering {
			segment := node.Segment
			renderer.inline.WriteString(renderer.style().Render(string(segment.Value(renderer.source))))
			if node.HardLineBreak() {
				renderer.flushInline("")
			} else if node.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
		}

	case *ast.Emphasis:
		if node.Level >= 2 {
			if entering {
				renderer.boldCount++
			} else {
				renderer.boldCount--
			}
		} else {
			if entering {
				renderer.italicCount++
			} else {
				renderer.italicCount--
			}
		}

	case *extast.Strikethrough:
		if entering {
			renderer.strikeCount++
		} else {
			renderer.strikeCount--
		}

	case *ast.CodeSpan:
		if entering {
			var literal strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					literal.Write(textNode.Segment.Value(renderer.source))
				}
			}
			renderer.inline.WriteString(renderer.lipRenderer.NewStyle().
				Foreground(renderer.theme.CodeForeground).
				Background(renderer.theme.CodeBackground).
				Render(literal.String()))
			return ast.WalkSkipChildren, nil
		}

	case *ast.FencedCodeBlock:
		if entering {
			renderer.flushInline("")
			renderer.writeCodeBlock(renderer.blockLines(node), string(node.Language(renderer.source)))
			renderer.writeBlank()
			return ast.WalkSkipChildren, nil
		}

	case *ast.CodeBlock:
		if entering {
			renderer.flushInline("")
			renderer.writeCodeBlock(renderer.blockLines(node), "")
			renderer.writeBlank()
			return ast.WalkSkipChildren, nil
		}

	case *ast.Blockquote:
		if entering {
			renderer.flushInline("")
			renderer.prefix += renderer.lipRenderer.NewStyle().
				Foreground(renderer.theme.QuoteForeground).
				Render("│ ")
		} else {
			renderer.prefix = renderer.prefix[:len(renderer.prefix)-len(renderer.lipRenderer.NewStyle().
				Foreground(renderer.theme.QuoteForeground).
				Render("│ "))]
		}

	case *ast.List:
		if entering {
			renderer.flushInline("")
			renderer.listStack = append(renderer.listStack, listState{
				ordered: node.IsOrdered(),
				counter: node.Start,
			})
		} else {
			renderer.listStack = renderer.listStack[:len(renderer.listStack)-1]
			if len(renderer.listStack) == 0 {
				renderer.writeBlank()
			}
		}

	case *ast.ListItem:
		if entering {
			state := &renderer.listStack[len(renderer.listStack)-1]
			if state.ordered {
				renderer.pendingBullet = strconv.Itoa(state.counter) + ". "
				state.counter++
			} else {
				renderer.pendingBullet = "• "
			}
		} else {
			renderer.flushInline("")
			if renderer.pendingBullet != "" {
				// Empty item: the bullet was never consumed.
				renderer.pendingBullet = ""
			} else if depth := len(renderer.bulletIndents); depth > 0 {
				indent := renderer.bulletIndents[depth-1]
				renderer.bulletIndents = renderer.bulletIndents[:depth-1]
				renderer.prefix = renderer.prefix[:len(renderer.prefix)-indent]
			}
		}

	case *ast.Link:
		if entering {
			renderer.inline.WriteString(renderer.lipRenderer.NewStyle().
				Foreground(renderer.theme.LinkForeground).
				Underline(true).
				Render(string(node.Destination)))
			// Render the destination, not the anchor text: terminals
			// cannot click markdown anchors, so the URL is the useful
			// part.
			return ast.WalkSkipChildren, nil
		}

	case *ast.AutoLink:
		if entering {
			renderer.inline.WriteString(renderer.lipRenderer.NewStyle().
				Foreground(renderer.theme.LinkForeground).
				Underline(true).
				Render(string(node.URL(renderer.source))))
		}

	case *ast.ThematicBreak:
		if entering {
			renderer.flushInline("")
			renderer.writeLine(renderer.lipRenderer.NewStyle().
				Foreground(renderer.theme.BorderColor).
				Render(strings.Repeat("─", min(renderer.width, 24))))
			renderer.writeBlank()
		}
	}
	return ast.WalkContinue, nil
}

// blockLines extracts the raw text lines of a code block node.
func (renderer *markdownRenderer) blockLines(node ast.Node) string {
	var content strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		content.Write(segment.Value(renderer.source))
	}
	return content.String()
}

// writeCodeBlock renders code with chroma syntax highlighting when a
// language is declared, falling back to a plain styled block.
func (renderer *markdownRenderer) writeCodeBlock(code, language string) {
	code = strings.TrimRight(code, "\n")
	if language != "" {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err == nil {
			for _, line := range strings.Split(strings.TrimRight(highlighted.String(), "\n"), "\n") {
				renderer.writeLine("  " + line)
			}
			return
		}
	}
	plain := renderer.lipRenderer.NewStyle().
		Foreground(renderer.theme.CodeForeground).
		Background(renderer.theme.CodeBackground)
	for _, line := range strings.Split(code, "\n") {
		renderer.writeLine("  " + plain.Render(line))
	}
}

// flushInline word-wraps the accumulated inline content and writes it
// out line by line with the current block prefix. The suffix argument
// is appended to the raw inline text before wrapping (unused by
// current callers, kept for symmetry with writeLine).
func (renderer *markdownRenderer) flushInline(suffix string) {
	content := strings.TrimRight(renderer.inline.String(), " ")
	renderer.inline.Reset()
	if content == "" && renderer.pendingBullet == "" {
		return
	}
	content += suffix

	wrapWidth := renderer.width - ansi.StringWidth(renderer.prefix) - ansi.StringWidth(renderer.pendingBullet)
	if wrapWidth < 10 {
		wrapWidth = 10
	}
	wrapped := ansi.Wordwrap(content, wrapWidth, "")
	for _, line := range strings.Split(wrapped, "\n") {
		renderer.writeLine(line)
	}
}

// writeLine emits one output line under the current prefix. A pending
// list bullet occupies the first line after it is set; continuation
// lines get matching indentation instead.
func (renderer *markdownRenderer) writeLine(line string) {
	renderer.output.WriteString(renderer.prefix)
	if renderer.pendingBullet != "" {
		renderer.output.WriteString(renderer.lipRenderer.NewStyle().
			Foreground(renderer.theme.FaintText).
			Render(renderer.pendingBullet))
		indent := ansi.StringWidth(renderer.pendingBullet)
		renderer.prefix += strings.Repeat(" ", indent)
		renderer.bulletIndents = append(renderer.bulletIndents, indent)
		renderer.pendingBullet = ""
	}
	renderer.output.WriteString(line)
	renderer.output.WriteString("\n")
}

// writeBlank separates blocks with a single empty line, collapsing
// runs of blanks.
func (renderer *markdownRenderer) writeBlank() {
	rendered := renderer.output.String()
	if strings.HasSuffix(rendered, "\n\n") || rendered == "" {
		return
	}
	renderer.output.WriteString("\n")
}
