// Package wordlist streams candidate passwords from a wordlist into batch
// dispatch.
//
// Wordlists are large and line-oriented; the scanner reads with a big
// buffer, trims line endings, and drops oversized candidates at the feed
// stage so the dispatcher never sees an input it would have to reject.
package wordlist
