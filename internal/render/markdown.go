package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// CheckMarkdown parses rendered markdown output to confirm it is
// well-formed. Conversion is thrown away; only the error matters.
func CheckMarkdown(content []byte) error {
	var buf bytes.Buffer
	if err := goldmark.Convert(content, &buf); err != nil {
		return fmt.Errorf("markdown check: %w", err)
	}
	return nil
}
