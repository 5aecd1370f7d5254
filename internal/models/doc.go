// Package models lists the OpenAI chat models an API key can use for
// meaning lookups, so a working value for --meaning-model can be picked.
package models
