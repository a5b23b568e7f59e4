package newsletter

import "fmt"

// NetworkError reports a failed feed fetch. It is fatal for the whole run.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching feed %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching feed %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FeedParseError reports a feed body that is not valid RSS or Atom. It is fatal for the whole run.
type FeedParseError struct {
	Err error
}

func (e *FeedParseError) Error() string {
	return fmt.Sprintf("parsing feed: %v", e.Err)
}

func (e *FeedParseError) Unwrap() error { return e.Err }

// MalformedContentError reports a post whose HTML lacks a node the rewrite depends on.
// It only affects that post.
type MalformedContentError struct {
	Path string
	Step string
	Want string
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("%s: %s: no %s found", e.Path, e.Step, e.Want)
}
