// Package features turns merged catalog records into the tag corpus consumed by
// the vectorizer.
//
// Field parsing never fails: malformed encoded fields degrade to empty lists so
// one bad record cannot abort a pipeline run.
package features
