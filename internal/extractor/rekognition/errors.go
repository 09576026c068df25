package rekognition

import "errors"

var (
	// ErrInvalidDocument indicates the uploaded bytes cannot be processed
	// (wrong format, too small, or larger than the Rekognition limit).
	ErrInvalidDocument = errors.New("invalid document image")

	// ErrInvalidCredentials indicates the AWS credential chain rejected the call.
	ErrInvalidCredentials = errors.New("invalid AWS credentials")

	// ErrThrottled indicates the Rekognition API throttled the request.
	ErrThrottled = errors.New("rekognition request throttled")
)
