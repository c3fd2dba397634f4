// Package vectorstore holds the similarity helpers shared by the local
// vector stores. Backends live in subpackages (supabase, postgres,
// elasticsearch, null); the local ones (memory, sqlite) live under storage.
package vectorstore
