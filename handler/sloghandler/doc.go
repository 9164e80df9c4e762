// Package sloghandler lets code written against log/slog log through a
// logger tree.
//
// A slog record becomes a message on a derived node: the record level picks
// the verbosity offset (Info and above log at offset 0, Debug at 1, each
// further four slog levels one more), attributes become node values and
// groups prefix their keys with "group.". Records at slog.LevelError or above
// are logged with Error; an error-valued "err" or "error" attribute supplies
// the error text.
//
// Basic usage:
//
//	root := logger.New(sink)
//	slog.SetDefault(slog.New(sloghandler.New(root)))
//	slog.Debug("cache miss", "qname", "example.com.")
package sloghandler
