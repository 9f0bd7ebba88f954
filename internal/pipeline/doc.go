// Package pipeline wires the catalog, feature, vectorizer, similarity and
// recommender stages together.
//
// BuildIndex runs every stage from normalization to the similarity matrix and
// logs how long each took. Engine owns a loaded catalog and rebuilds the index
// on every Recommend call; long-running callers that want to reuse the matrix
// can hold on to the result of Engine.Index instead.
package pipeline
