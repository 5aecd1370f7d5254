// Package translation looks up short English meanings of Japanese words
// using the OpenAI API. Answers are memoised in a TranslationCache so each
// word is only asked for once per run.
package translation
