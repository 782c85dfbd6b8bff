// Package minio implements blobstore.Store for MinIO and other
// S3-compatible object stores using the native MinIO client.
package minio
