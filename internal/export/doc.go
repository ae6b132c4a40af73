// Package export converts incidents to spreadsheet formats for downloading.
package export
