// Package csvfile reads castanet samples from CSV files with a header row.
// Files in legacy charsets are decoded to UTF-8 first.
package csvfile
