// Package ast is the typed, renderer-neutral representation of a
// VizQL visualization: tables and columns on the data side, and
// VizSpec/Layer/MappingExpr/Scale/Guide on the plot side. It is a pure
// data model; construction happens in package parser, mutation is
// confined to package resolver's wildcard expansion, and equality is
// structural.
package ast
