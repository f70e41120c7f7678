package models

import "fmt"

// TransportError indicates that the generation request failed at the
// network/HTTP layer, including non-2xx responses from the API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NoURLFoundError indicates that the response body did not contain an
// image download URL after the framing bytes were removed.
type NoURLFoundError struct{}

func (e *NoURLFoundError) Error() string {
	return "no image URL found"
}

// DownloadError indicates that fetching the image bytes failed, either at
// the network layer or with a non-200 status.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error downloading image: %v", e.Err)
	}
	return "failed to download the image"
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// UnexpectedError wraps any other failure encountered while generating an
// image, preserving the original cause.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("an unexpected error occurred: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
