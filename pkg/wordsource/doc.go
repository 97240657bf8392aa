// Package wordsource opens training dictionaries for the markov package.
//
// Every source yields an io.ReadCloser with one word per line, which is the
// format markov.Train expects. Dictionaries can come from a filesystem (any
// afero.Fs, including standard input via "-"), from a SQL query against an
// open database, or from an object in S3.
package wordsource
