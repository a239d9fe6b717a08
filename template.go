package config

import (
	"bufio"
	"io"
	"strings"
)

// GenerateTemplate renders a commented config source of s in the line format:
// one block per parameter in declaration order with its description, comment
// lines, option hints, and a commented "#name default" line. Removing the
// leading '#' from the assignment lines yields a source that loads back to the
// defaults of s.
//
// With local set, only the parameters declared by s itself are rendered.
func GenerateTemplate(s *Schema, local bool) (string, error) {
	var b strings.Builder
	if err := WriteTemplate(&b, s, local); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteTemplate is GenerateTemplate writing to w.
func WriteTemplate(w io.Writer, s *Schema, local bool) error {
	var opts []Option
	if local {
		opts = append(opts, WithLocal())
	}
	c, err := New(s, opts...)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, p := range c.reg.params {
		writeParamBlock(bw, p, c.values.Has(p.Name))
	}
	return bw.Flush()
}

func writeParamBlock(w *bufio.Writer, p ParameterSpec, hasDefault bool) {
	if p.Description != "" {
		w.WriteString("# " + p.Description + "\n#\n")
	}
	if len(p.Comment) > 0 {
		for _, line := range p.Comment {
			for _, l := range strings.Split(line, "\n") {
				if strings.TrimSpace(l) == "" {
					w.WriteString("#\n")
					continue
				}
				w.WriteString("# " + l + "\n")
			}
		}
		w.WriteString("#\n")
	}
	if len(p.Options) > 0 {
		w.WriteString("#  Command line option: " + strings.Join(p.Options, " ") + "\n#\n")
	}
	w.WriteString("#" + p.Name)
	// The raw declared default is rendered, so an uncommented line runs
	// through the handler exactly like the default did.
	if hasDefault {
		w.WriteString(" " + Literal(p.Default))
	}
	w.WriteString("\n\n")
}

// WriteTemplateFile writes the template of s to path atomically, creating the
// parent directories when needed.
func WriteTemplateFile(path string, s *Schema, local bool) error {
	text, err := GenerateTemplate(s, local)
	if err != nil {
		return err
	}
	return writeFileWithParents(path, []byte(text))
}
