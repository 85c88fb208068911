package ingestion

import "errors"

var (
	// ErrItemRepositoryRequired is returned when an item repository is not provided.
	ErrItemRepositoryRequired = errors.New("item repository required")

	// ErrGatewayRequired is returned when an index gateway is not provided.
	ErrGatewayRequired = errors.New("index gateway required")

	// ErrAnnotatorRequired is returned when an annotator is not provided.
	ErrAnnotatorRequired = errors.New("annotator required")

	// ErrExtractorRequired is returned when a metadata extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")
)
