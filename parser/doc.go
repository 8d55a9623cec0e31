// Package parser turns raw query text into an ast.VizSpec slice in two
// steps: Split partitions SQL from the VISUALISE suffix (handling
// string literals, comments, and FROM-sugar injection), and
// ParseVizSuffix runs a recursive-descent grammar over that suffix.
package parser
