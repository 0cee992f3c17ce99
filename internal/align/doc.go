// Package align pairs the sentences of a master document with the sentences
// of a test document.
//
// Two assignment strategies are provided:
//   - Greedy walks master sentences in document order and takes the best
//     still-unused test sentence each time. The first master sentence wins
//     contested candidates. This is the default.
//   - Optimal solves the assignment problem over the whole similarity matrix
//     (Hungarian method) and maximizes the summed similarity instead.
//
// Both return master entries first, in master order, followed by every
// unconsumed test sentence in test order. A test sentence appears in at most
// one alignment. A pairing needs a similarity above zero; a master sentence
// with no such candidate is reported as removed.
//
// Similarity is a token-sort ratio: the tokens of each sentence are sorted and
// re-joined before a normalized character-level edit similarity is computed,
// so "terminated for cause" and "for cause terminated" score 100.
package align
