// Package ui provides helpers for formatting human-readable console output.
//
// Palette styles operator-facing text with lipgloss and degrades to plain text
// when output is not a terminal. ConsoleCommandEventLogger turns git command
// lifecycle events into short progress lines while detailed telemetry keeps
// flowing through structured loggers.
package ui
