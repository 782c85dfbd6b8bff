// Package s3 implements blobstore.Store on Amazon S3.
//
// Snapshot uploads stream through an io.Pipe into the SDK's parallel
// multipart uploader, so a frame snapshot never has to be buffered in
// full before it leaves the process.
//
// Construct a store from a configured SDK client:
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "webs/")
package s3
