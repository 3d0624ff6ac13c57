package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ionut-t/codeblock/core"
)

// BlocksCommand lists the code blocks of a file with the rendering path each
// one takes.
func BlocksCommand(args []string) error {
	opts, err := parseOptions("blocks", args)
	if err != nil {
		return err
	}

	segments, err := readSegments(opts.file)
	if err != nil {
		return err
	}

	return printBlocks(os.Stdout, core.Blocks(segments))
}

func printBlocks(out io.Writer, blocks []core.Block) error {
	if len(blocks) == 0 {
		_, err := fmt.Fprintln(out, "No code blocks found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tLANGUAGE\tLINES\tCHARS\tSTRATEGY\tHIGHLIGHT")

	for _, block := range blocks {
		strategy := core.SelectStrategy(block.Text)

		language := block.Language
		if language == "" {
			language = "-"
		}

		highlight := "no"
		if core.ShouldHighlight(block.Text, strategy) {
			highlight = "yes"
		}

		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			block.Key, language, core.LineCount(block.Text), core.Length(block.Text), strategy, highlight)
	}

	return w.Flush()
}
