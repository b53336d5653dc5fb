// Package ecode defines the business codes carried by the blog API envelope
// and the error taxonomy used across the client.
//
// Every failure that reaches a caller is an *Error with a Kind:
//
//	KindAuth        bad credentials, missing challenge
//	KindValidation  blocked client-side before any request
//	KindAPI         non-success status or envelope code
//	KindNotFound    404 from the API, rendered as an empty view
//	KindUpload      pre-signed PUT rejected by storage
//	KindNetwork     transport failure, no response received
//
// Use KindOf or errors.Is with the sentinels:
//
//	if errors.Is(err, ecode.ErrNotFound) {
//	    // render not-found view
//	}
//
// Message returns the text to show a user for any error.
package ecode
