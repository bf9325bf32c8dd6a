package domain

import "errors"

// Sentinel errors for feed and cache operations
var (
	// ErrMissingContainers indicates the home document has no container list
	ErrMissingContainers = errors.New("feed has no containers")

	// ErrMissingTitle indicates a container without a display title
	ErrMissingTitle = errors.New("container has no title")

	// ErrMissingRefID indicates a container with neither inline items nor a set reference
	ErrMissingRefID = errors.New("could not find refId for set")

	// ErrMissingItems indicates a referenced set document without items
	ErrMissingItems = errors.New("could not find items for set")

	// ErrFetchFailed indicates a remote resource could not be retrieved
	ErrFetchFailed = errors.New("fetch failed")

	// ErrDecodeFailed indicates downloaded bytes could not be decoded (image or feed JSON)
	ErrDecodeFailed = errors.New("decode failed")
)
