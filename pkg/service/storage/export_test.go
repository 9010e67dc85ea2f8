package storage

// Export internal functions for testing
var ObjectURL = objectURL
