// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argv

import "strings"

// Tokenize splits commandLine into arguments. The empty string and
// all-whitespace input produce a nil slice.
func Tokenize(commandLine string) []string {
	var (
		arguments []string
		current   strings.Builder
		inQuotes  bool
	)

	for index := 0; index < len(commandLine); index++ {
		backslashes := 0
		for index < len(commandLine) && commandLine[index] == '\\' {
			backslashes++
			index++
		}

		if backslashes > 0 {
			if index >= len(commandLine) || commandLine[index] != '"' {
				current.WriteString(strings.Repeat(`\`, backslashes))
				// Reprocess the terminating character (if any) on the
				// next iteration.
				index--
				continue
			}

			current.WriteString(strings.Repeat(`\`, backslashes/2))
			if backslashes%2 == 0 {
				// The quote is unescaped; let the loop see it again.
				index--
			} else {
				current.WriteByte('"')
			}
			continue
		}

		character := commandLine[index]
		switch {
		case character == '"':
			inQuotes = !inQuotes
		case (character == ' ' || character == '\t') && !inQuotes:
			if current.Len() > 0 {
				arguments = append(arguments, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(character)
		}
	}

	if current.Len() > 0 {
		arguments = append(arguments, current.String())
	}
	return arguments
}

// Quote returns argument in a form that Tokenize reads back as exactly
// one argument equal to the input. Arguments without whitespace or
// quotes are returned unchanged. The empty string cannot be represented
// (Tokenize never yields empty arguments) and is returned as "".
func Quote(argument string) string {
	if argument == "" {
		return `""`
	}
	if !strings.ContainsAny(argument, " \t\"") {
		return argument
	}

	var builder strings.Builder
	builder.WriteByte('"')
	backslashes := 0
	for index := 0; index < len(argument); index++ {
		character := argument[index]
		switch character {
		case '\\':
			backslashes++
			continue
		case '"':
			// Escape the pending backslashes and the quote itself.
			builder.WriteString(strings.Repeat(`\`, backslashes*2+1))
			builder.WriteByte('"')
		default:
			builder.WriteString(strings.Repeat(`\`, backslashes))
			builder.WriteByte(character)
		}
		backslashes = 0
	}
	// Backslashes before the closing quote must be doubled so the quote
	// still closes.
	builder.WriteString(strings.Repeat(`\`, backslashes*2))
	builder.WriteByte('"')
	return builder.String()
}

// Join quotes each argument and joins them with single spaces.
func Join(arguments []string) string {
	quoted := make([]string, len(arguments))
	for index, argument := range arguments {
		quoted[index] = Quote(argument)
	}
	return strings.Join(quoted, " ")
}
