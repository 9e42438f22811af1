// Package transforms provides the text cleanup pipeline applied between
// page extraction and tokenization. Transforms are registered by name so
// the pipeline can be assembled from configuration.
package transforms
