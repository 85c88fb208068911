// Package classify maps raw submitted content to a source platform and
// content type. Classification is pure and total: it never performs I/O
// and never fails, degrading ambiguous input to generic text.
package classify
