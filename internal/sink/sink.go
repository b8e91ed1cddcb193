// Package sink delivers export artifacts to their destination: a local
// directory, an S3 bucket, or memory for tests.
package sink

import "context"

// Sink accepts a named byte buffer and makes it available to the user.
type Sink interface {
	// Deliver writes the artifact under the given name.
	Deliver(ctx context.Context, name string, data []byte) error

	// ValidateSetup verifies that the sink is accessible and properly configured.
	ValidateSetup(ctx context.Context) error
}
