package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

// ErrorOptions configures a formatted error message
type ErrorOptions struct {
	Context      string
	Problem      string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError renders a headed error message with suggestions:
//
//	✗ UNKNOWN TYPE: pont
//	   Did you mean: point?
//
//	   → List spatial types: geoschema version
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	header := color.New(color.FgRed, color.Bold)
	hint := color.New(color.FgYellow)
	help := color.New(color.FgCyan)
	if opts.NoColor {
		header.DisableColor()
		hint.DisableColor()
		help.DisableColor()
	}

	if opts.Context != "" {
		header.Fprintf(&b, "✗ %s: %s\n", strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "✗ %s\n", opts.Problem)
	}

	if len(opts.Suggestions) > 0 {
		hint.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			help.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes the message for err. Configuration errors about type
// names or backends carry suggestions; anything else prints as is.
func WriteError(w io.Writer, err error, noColor bool) {
	fmt.Fprint(w, FormatError(describeError(err, noColor)))
}

func describeError(err error, noColor bool) ErrorOptions {
	opts := ErrorOptions{Problem: err.Error(), NoColor: noColor}

	var cfgErr *spatial.ConfigurationError
	if !errors.As(err, &cfgErr) {
		return opts
	}

	switch {
	case errors.Is(err, spatial.ErrUnsupportedBackend):
		opts.Context = "unsupported backend"
		opts.Problem = cfgErr.Name
		opts.Suggestions = FindSimilar(cfgErr.Name, spatial.Backends())
		opts.HelpCommands = []string{"List backends: geoschema version"}
	case errors.Is(err, spatial.ErrUnknownType), errors.Is(err, ddl.ErrUnsupportedType):
		opts.Context = "unknown type"
		opts.Problem = cfgErr.Name
		opts.Suggestions = FindSimilar(cfgErr.Name, columnTypeNames())
		opts.HelpCommands = []string{"Spatial types: " + strings.Join(spatialTypeNames(), ", ")}
	case errors.Is(err, spatial.ErrUnsupportedModifier):
		opts.Context = "unsupported modifier"
		opts.Problem = cfgErr.Err.Error()
	}
	return opts
}

func spatialTypeNames() []string {
	names := make([]string, 0, len(spatial.Types))
	for _, t := range spatial.Types {
		names = append(names, t.String())
	}
	return names
}

func columnTypeNames() []string {
	return append(spatialTypeNames(), ddl.TypeNames...)
}

// FormatSuccess renders a success line
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success line
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}
