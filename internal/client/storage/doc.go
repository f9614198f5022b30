// Package storage uploads avatar images to S3 with temporary credentials
// obtained from a Cognito identity pool in exchange for the user's ID token.
package storage
