package composer

import (
	"fmt"
	"strings"
)

const (
	contextHeader  = "Use the following personal context to answer the question.\n\nContext:\n"
	noContext      = "No stored personal context is available for this question.\n"
	questionHeader = "\nQuestion:\n"
)

// Document is one retrieved context item, already in similarity order.
type Document struct {
	Id       string
	Category string
	Text     string
}

type Composer struct {
	options Options
}

// Compose renders the retrieved documents and the question into a single
// prompt. Documents keep their input order; when the character ceiling would
// be exceeded, documents are dropped from the end of the list (least similar
// first) while the question and instruction are always kept whole. The
// returned slice holds the documents that made it into the prompt.
func (c *Composer) Compose(question string, docs []Document) (string, []Document) {
	suffix := questionHeader + question + "\n\n" + c.options.Instruction + "\n"

	lines := make([]string, len(docs))
	for i, doc := range docs {
		lines[i] = fmt.Sprintf("[%s#%s] %s\n", doc.Category, doc.Id, doc.Text)
	}

	included := len(docs)

	if c.options.MaxLength > 0 {
		total := len(contextHeader) + len(suffix)
		for _, line := range lines {
			total += len(line)
		}
		for included > 0 && total > c.options.MaxLength {
			included--
			total -= len(lines[included])
		}
	}

	var b strings.Builder

	if included == 0 {
		b.WriteString(noContext)
	} else {
		b.WriteString(contextHeader)
		for _, line := range lines[:included] {
			b.WriteString(line)
		}
	}

	b.WriteString(suffix)

	return b.String(), docs[:included]
}

func NewComposer(opts ...Option) *Composer {
	options := NewOptions(opts...)

	return &Composer{
		options: options,
	}
}
