// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package export turns a survey and its responses into a spreadsheet download.

# File Name

	export.FileName("Q1 Survey!!") // "Q1_Survey.csv"

# CSV Layout

One column per question (question text) followed by "Time Taken", then one
row per response. A question the respondent has no answer for is an empty
cell. Quoting follows encoding/csv.

# Encoding

Output is Windows-1252 for older spreadsheet software. Characters without a
Windows-1252 byte are written as 0x1A.

# Dates

Stored timestamps are UTC; FormatTimeTaken converts them to the display
location as "YYYY-MM-DD HH:MM:SS" and returns *apperrors.ParseError for
values it cannot read.

Build produces the whole file in memory, so callers can report an error
before sending any headers.
*/
package export
