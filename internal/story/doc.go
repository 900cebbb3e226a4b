// Package story holds the sample "hall" story played by the parlor CLI.
//
// Deckard waits in a vast hall with Rachel and an artificial owl. The story
// touches every part of the engine: seen flags gate the opening narration,
// presence gates what Rachel can be asked, the owl's attention is a
// decaying trigger, Rachel grows impatient after a few idle turns and
// leaving the hall moves the world to the street where the story ends.
package story
