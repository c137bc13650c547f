// Package cache provides translation store implementations.
//
// Stores are addressed as a two-level map: the outer key is the language and
// the inner key is the word.
package cache

import "github.com/ZaguanLabs/gotrans"

// TranslationCache is an alias to the main package interface for convenience.
type TranslationCache = gotrans.TranslationCache

// SessionCache is an alias to the main package interface for convenience.
type SessionCache = gotrans.SessionCache
