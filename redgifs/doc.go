// Package redgifs provides a client for the RedGifs media-hosting API.
//
// The package exposes two call surfaces against the same remote contract:
// Client blocks the calling goroutine for the full round trip, AsyncClient
// returns a Future per call and never blocks the caller. Both build their
// results through the same parser, so identical server responses produce
// identical models.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := redgifs.NewClient(logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	if err := client.Login(ctx, "", ""); err != nil { // anonymous session
//		log.Fatal(err)
//	}
//
//	result, err := client.Search(ctx, tags.Raw("sunset timelapse"), redgifs.SearchOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Credentials
//
// Login acquires one credential per session: an anonymous temporary token,
// optionally upgraded to a user-scoped token when a username and password
// are supplied. There is no automatic refresh; an authentication failure
// mid-session surfaces as an error and the caller decides whether to call
// Login again.
//
// # Errors
//
// Failures are typed and surface directly to the caller, never retried:
//
//   - *AuthError: the remote rejected the username/password combination
//   - *RequestError: the remote host could not be reached
//   - *HTTPError: a non-2xx response, with status code and path
//   - *ResponseFormatError: the body was not decodable JSON
//   - *ParseError: valid JSON missing a required field
//   - ErrInvalidHost: a download URL outside the expected media host
package redgifs
