package process

import "strings"

// Quote returns arg as a single command-line token following the Windows
// argv splitting rules (CommandLineToArgvW / the MSVC runtime).
//
// An empty argument becomes "". Arguments without a space or double quote are
// returned unchanged, as are arguments that are already a balanced quoted
// token. Everything else is wrapped in double quotes with embedded quotes
// escaped. A run of backslashes is doubled when a quote follows it, inside
// the argument or at its end, so the token always splits back to arg.
// Quote has no side effects and never fails.
func Quote(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, ` "`) {
		return arg
	}
	if isQuoted(arg) {
		return arg
	}

	var b strings.Builder
	b.Grow(len(arg) + 4)
	b.WriteByte('"')
	backslashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			backslashes++
		case '"':
			// A run of backslashes in front of a quote is literal only when
			// doubled; the extra backslash escapes the quote itself.
			b.WriteString(strings.Repeat(`\`, backslashes+1))
			backslashes = 0
		default:
			backslashes = 0
		}
		b.WriteByte(c)
	}
	// The closing quote must not be escaped by a trailing run.
	b.WriteString(strings.Repeat(`\`, backslashes))
	b.WriteByte('"')
	return b.String()
}

// isQuoted reports whether arg starts and ends with a double quote and every
// quote in between is either escaped by an odd run of backslashes or pairs
// up, leaving the scan outside a quoted span.
func isQuoted(arg string) bool {
	if !strings.HasPrefix(arg, `"`) || !strings.HasSuffix(arg, `"`) {
		return false
	}
	inQuote := false
	backslashes := 0
	for i := 0; i < len(arg); i++ {
		switch arg[i] {
		case '"':
			if backslashes%2 == 0 {
				inQuote = !inQuote
			}
			backslashes = 0
		case '\\':
			backslashes++
		default:
			backslashes = 0
		}
	}
	return !inQuote
}

// QuoteArgs quotes every argument and joins them with single spaces.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}

// JoinArgs joins args with single spaces without any quoting.
func JoinArgs(args []string) string {
	return strings.Join(args, " ")
}
